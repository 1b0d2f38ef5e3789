// Package registry provides a generic, name-keyed registry. The render
// dispatcher keeps its node handlers in one, and the XAML schema keeps its
// known types in another.
package registry
