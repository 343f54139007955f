package content

import "time"

// fallbackPosts returns the compiled-in post set used when no markdown files
// are present on disk, so a fresh checkout still renders a working blog.
func fallbackPosts() []Post {
	return []Post{
		{
			Slug:     "circuit-breakers-in-practice",
			Title:    "Circuit Breakers in Practice",
			Summary:  "What actually happens when a downstream dependency starts failing, and how a breaker keeps the blast radius small.",
			Category: "systems",
			Tags:     []string{"resilience", "microservices", "patterns"},
			Author:   "Avery Quinn",
			Body: `Every service that calls another service eventually learns the same lesson: failures cascade.

## The failure mode

When a dependency slows down, callers pile up waiting on it. Thread pools and
connection pools drain, and a latency problem in one corner becomes an outage
everywhere.

## States of a breaker

A circuit breaker wraps the outbound call and tracks failures.

### Closed

Requests flow normally. The breaker counts recent failures in a sliding window.

### Open

Past a threshold, the breaker rejects calls immediately. Callers get a fast
error instead of a slow one, and the dependency gets room to recover.

### Half-open

After a cool-down, a few probe requests are let through. Success closes the
breaker; failure re-opens it.

## Tuning notes

Thresholds are workload-specific. Start with a window of ten seconds, trip at
fifty percent failures with a minimum request count, and probe with a single
request. Measure before changing anything.`,
			ReadingTimeMinutes: 4,
			PublishedAt:        time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			UpdatedAt:          time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			SEO: PostSEO{
				MetaTitle:       "Circuit Breakers in Practice | Avery Quinn",
				MetaDescription: "A field guide to circuit breaker states, thresholds, and tuning.",
			},
		},
		{
			Slug:     "rate-limiting-strategies",
			Title:    "Rate Limiting Strategies Compared",
			Summary:  "Token bucket, sliding window, and fixed window limiters, and where each one earns its keep.",
			Category: "systems",
			Tags:     []string{"rate-limiting", "api", "backend"},
			Author:   "Avery Quinn",
			Body: `Rate limiting is the cheapest protection a public endpoint can have.

## Fixed window

Count requests per clock-aligned interval. Trivial to implement, but bursty at
window boundaries: a client can send a full quota at 11:59:59 and again at
12:00:00.

## Sliding window

Weight the previous window's count by how much of it still overlaps the
current moment. Smooths the boundary burst at the cost of one extra counter.

## Token bucket

Tokens refill at a steady rate up to a cap. Allows controlled bursts while
enforcing a long-term average, which matches how clients actually behave.

## Choosing

For login endpoints, fixed windows are fine. For paid API quotas, token
buckets are worth the bookkeeping.`,
			ReadingTimeMinutes: 3,
			PublishedAt:        time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			UpdatedAt:          time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			SEO: PostSEO{
				MetaTitle:       "Rate Limiting Strategies Compared | Avery Quinn",
				MetaDescription: "Fixed window, sliding window, and token bucket limiters compared.",
			},
		},
		{
			Slug:     "lessons-from-a-chat-server",
			Title:    "Lessons from Building a Chat Server",
			Summary:  "Connection lifecycles, backpressure, and the bugs that only show up with a thousand idle sockets.",
			Category: "projects",
			Tags:     []string{"websockets", "concurrency", "chat"},
			Author:   "Avery Quinn",
			Body: `A chat server looks simple on a whiteboard. The interesting parts are all in
the connection lifecycle.

## Idle connections are not free

A thousand idle sockets cost memory for buffers and goroutines for readers.
Heartbeats with a read deadline are the only reliable way to find dead peers;
TCP keepalive alone will leave ghosts around for hours.

## Backpressure or bust

A slow consumer must not stall the broadcast path. Give each connection a
bounded outbound queue and disconnect clients that stay full. Dropping a slow
client is a feature.

## Ordering

Per-room ordering is cheap if one goroutine owns the room. Global ordering is
expensive and almost never what the product actually needs.`,
			ReadingTimeMinutes: 3,
			PublishedAt:        time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
			UpdatedAt:          time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC),
			SEO: PostSEO{
				MetaTitle:       "Lessons from Building a Chat Server | Avery Quinn",
				MetaDescription: "Connection lifecycles, heartbeats, and backpressure in a real-time chat server.",
			},
		},
		{
			Slug:     "server-rendered-portfolios",
			Title:    "Why This Site Is Server-Rendered",
			Summary:  "Templates, a sprinkle of htmx, and no build step: the stack behind this portfolio.",
			Category: "meta",
			Tags:     []string{"go", "htmx", "templates"},
			Author:   "Avery Quinn",
			Body: `This site is a single Go binary rendering html/template files.

## What the stack buys

No bundler, no hydration, no client router. Pages are cacheable HTML, and the
only JavaScript is htmx swapping fragments for the blog filter and the
contact form.

## Where htmx fits

Filter buttons request the list fragment and push the filtered URL into
history, so reloads and shared links land on the same view. The contact form
posts and swaps in a success or error fragment without leaving the page.

## What it costs

Fragment endpoints need the same care as full pages: CSRF on posts, cache
headers on gets, and tests that assert on the rendered markup.`,
			ReadingTimeMinutes: 2,
			PublishedAt:        time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC),
			UpdatedAt:          time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC),
			SEO: PostSEO{
				MetaTitle:       "Why This Site Is Server-Rendered | Avery Quinn",
				MetaDescription: "The Go, html/template, and htmx stack behind this portfolio.",
			},
		},
	}
}
