// Package errors provides structured, actionable error messages for the
// shwimple CLI.
//
// Each error carries a code that maps to a registered template:
//   - E1xx: configuration
//   - E2xx: page files
//   - E3xx: publishing
//   - E4xx: preview server
//   - E5xx: command line usage
//
// # Usage
//
//	err := errors.New("E202").
//	    WithLocationFromError("pages/index.yaml", yamlErr).
//	    WithSuggestion("Indent nested children with spaces, not tabs")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E202: Invalid page file syntax
//	//
//	//   pages/index.yaml:4
//	//
//	//        2 │ layout: landing
//	//        3 │ main:
//	//   →    4 │ 	- tag: h1
//	//        5 │     text: Hello
//	//
//	//   The page file is not valid YAML or JSON.
//	//
//	//   Hint: Indent nested children with spaces, not tabs
package errors
