// Package templates embeds the HTML pages. Every page defines a "content"
// block rendered inside layout.html.
package templates

import "embed"

//go:embed *.html
var FS embed.FS

// Pages lists the page files, each parsed together with the layout.
var Pages = []string{
	"index.html",
	"register.html",
	"login.html",
	"schedule.html",
	"add_lesson.html",
	"tasks.html",
	"test.html",
	"results.html",
}
