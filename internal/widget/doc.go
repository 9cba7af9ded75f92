// Package widget binds the site search engine to a search page.
//
// A Widget is given references to the page's query input, status line,
// results container, and optionally the search form and an ARIA live
// region. Run performs one search and rewrites those elements the same
// way on every host: a single offline render, or one HTTP request.
package widget
