// Package distill fetches web pages and reduces each one to a clean,
// self-contained HTML fragment holding only the page's primary readable
// content, suitable for archival, indexing, or text analysis.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package distill
