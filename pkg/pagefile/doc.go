// Package pagefile reads declarative page definitions.
//
// A page file is YAML (JSON is accepted, being a subset) naming a title, a
// layout and the elements to mount in the head, the main content area and
// the end of the body:
//
//	title: Welcome
//	layout: landing
//	head:
//	  - tag: link
//	    attrs: {rel: stylesheet, href: /app.css}
//	main:
//	  - tag: h1
//	    text: Hello
//	  - tag: section
//	    id: intro
//	    markdown: |
//	      Built **on the server**.
//
// Each element sets at most one content field: text, raw, sanitize,
// markdown or html. Children follow the content.
package pagefile
