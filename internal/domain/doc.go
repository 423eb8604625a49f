// Package domain contains the core business entities of the study tracker:
// users, tasks, tags, and the filter and page value objects used when
// listing tasks. It is independent of any storage or delivery mechanism.
package domain
