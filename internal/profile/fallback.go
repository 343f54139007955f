package profile

// Default returns the compiled-in profile used when data/profile.yaml is
// missing, so a fresh checkout renders a complete home page.
func Default() Profile {
	return Profile{
		Name:     "Avery Quinn",
		Headline: "Backend engineer who ships small, sturdy services",
		Intro: "I build server-side systems in Go and Rust: APIs, real-time " +
			"plumbing, and the operational glue around them. This site is a " +
			"single Go binary; the source doubles as my resume.",
		Email:    "hello@averyquinn.dev",
		Location: "Portland, OR",
		SiteURL:  "https://averyquinn.dev",
		Links: []Link{
			{Label: "GitHub", URL: "https://github.com/averyquinn"},
			{Label: "LinkedIn", URL: "https://www.linkedin.com/in/averyquinn"},
		},
		SkillGroups: []SkillGroup{
			{Name: "Languages", Skills: []string{"Go", "Rust", "SQL", "TypeScript"}},
			{Name: "Backend", Skills: []string{"HTTP services", "WebSockets", "gRPC", "Postgres", "SQLite", "Redis"}},
			{Name: "Operations", Skills: []string{"Docker", "CI pipelines", "Observability", "Load testing"}},
		},
		Projects: []Project{
			{
				Title:       "Storefront Platform",
				Description: "A distributed e-commerce backend: API gateway with circuit breakers and per-route rate limits, JWT auth, and order/inventory services behind it.",
				TechStack:   []string{"Rust", "Postgres", "Redis"},
				RepoURL:     "https://github.com/averyquinn/storefront-platform",
				Year:        2025,
				Featured:    true,
			},
			{
				Title:       "Relay Chat",
				Description: "A real-time chat server handling thousands of concurrent WebSocket connections with per-room ordering and bounded backpressure.",
				TechStack:   []string{"Rust", "WebSockets", "Tokio"},
				RepoURL:     "https://github.com/averyquinn/relay-chat",
				Year:        2024,
				Featured:    true,
			},
			{
				Title:       "This Site",
				Description: "Server-rendered portfolio and blog: chi, html/template, htmx fragments, markdown content, SQLite visit metrics.",
				TechStack:   []string{"Go", "htmx", "SQLite"},
				RepoURL:     "https://github.com/averyquinn/portfolio-web",
				LiveURL:     "https://averyquinn.dev",
				Year:        2025,
				Featured:    true,
			},
		},
		Experience: []Experience{
			{
				Role:    "Senior Backend Engineer",
				Company: "Brightharbor",
				Start:   "Mar 2022",
				End:     "Present",
				Bullets: []string{
					"Own the order-processing services: four Go services handling peak traffic of 2k requests per second",
					"Cut p99 checkout latency 40% by moving inventory reservation onto a token-bucket admission layer",
					"Introduced structured request logging and trace propagation across the service fleet",
				},
			},
			{
				Role:    "Software Engineer",
				Company: "Fieldnote Labs",
				Start:   "Jun 2019",
				End:     "Feb 2022",
				Bullets: []string{
					"Built the realtime collaboration backend (WebSockets, CRDT merge) used by every Fieldnote client",
					"Maintained the Postgres schema migration tooling shared across product teams",
				},
			},
		},
		Education: []Education{
			{
				Degree:      "B.S. Computer Science",
				Institution: "Oregon State University",
				Start:       "2015",
				End:         "2019",
				Bullets: []string{
					"Focus on distributed systems and databases",
					"Senior project: a Raft-based key-value store",
				},
			},
		},
	}
}
