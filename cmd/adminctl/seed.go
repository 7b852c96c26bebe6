package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

var sampleBlogs = []models.Blog{
	{
		Title:    "Getting Started with Web Development",
		Excerpt:  "The fundamentals of HTML, CSS and JavaScript, and how to practise them.",
		Content:  "<h2>Introduction</h2><p>HTML gives a page its structure, CSS its look and JavaScript its behaviour. Start with small projects such as a portfolio or a to-do list and grow from there.</p>",
		Image:    "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800&h=400&fit=crop",
		Tags:     []string{"web development", "beginners", "html", "css", "javascript"},
		Featured: true,
	},
	{
		Title:    "Modern JavaScript Features",
		Excerpt:  "Arrow functions, destructuring, modules and async/await in practice.",
		Content:  "<h2>Modern JavaScript</h2><p>Arrow functions shorten callbacks, destructuring pulls values out of objects and arrays, and async/await makes asynchronous code read top to bottom.</p>",
		Image:    "https://images.unsplash.com/photo-1579468118864-1b9ea3c0db4a?w=800&h=400&fit=crop",
		Tags:     []string{"javascript", "es6"},
		Category: "Programming",
	},
	{
		Title:    "Building a Small API in Go",
		Excerpt:  "Routing, validation and persistence with a handful of well-chosen libraries.",
		Content:  "<h2>Why Go</h2><p>A single static binary, a fast compiler and a standard library that already speaks HTTP make Go a good fit for small services. Add a router, a validator and a database driver and you are most of the way there.</p>",
		Tags:     []string{"go", "api", "backend"},
		Category: "Programming",
	},
}

func seedBlogs(ctx context.Context, e *env, out io.Writer, force bool) error {
	if !force {
		n, err := e.store.CountBlogs(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			fmt.Fprintf(out, "%d posts already exist; use -force to seed anyway\n", n)
			return nil
		}
	}

	for _, sample := range sampleBlogs {
		blog := sample
		blog.Slug = models.NewSlug(blog.Title, time.Now())
		blog.Author = e.cfg.BlogDefaultAuthor
		blog.ImageAlt = models.DefaultBlogImageAlt
		if blog.Category == "" {
			blog.Category = models.DefaultBlogCategory
		}
		blog.Published = true
		blog.Tags = models.NormalizeTags(blog.Tags)
		blog.ReadTime = models.ReadTime(blog.Content)

		created, err := e.store.CreateBlog(ctx, blog)
		if err != nil {
			return fmt.Errorf("seed %q: %w", blog.Title, err)
		}
		fmt.Fprintf(out, "created /blogs/%s\n", created.Slug)
	}
	return nil
}
