package store

import "github.com/aquilax/blogboard/post"

// seedPosts are installed when the store holds no readable posts.
func seedPosts() post.PostList {
	return post.PostList{
		{
			ID:    1,
			Title: "How Machine Learning Is Transforming the World",
			Image: "https://images.unsplash.com/photo-1508387025-4a14e8d56d36",
			Body: `Machine Learning (ML) is everywhere, powering recommendations, assisting doctors, and transforming industries.

Real-world applications:
• Healthcare
• Self-driving cars
• Speech recognition
• Fraud detection
• Personalized feeds

ML has become part of our daily life.`,
			Date: "2025-01-12",
		},
		{
			ID:    2,
			Title: "A Beginner’s Guide to Web Development in 2025",
			Image: "https://images.unsplash.com/photo-1526378722484-cc69d4f1c6b6",
			Body: `Web development evolves quickly.

Frontend:
HTML → CSS → JavaScript → React → Next.js

Backend:
Node.js → APIs → Databases → Cloud

Tools:
VS Code, GitHub, Vercel

Build small projects and grow.`,
			Date: "2025-01-18",
		},
	}
}
