// Package overlay applies JSON patches and JSON merge patches to schema
// documents before they are parsed, for example to add a property to a
// schema owned by someone else without editing it.
package overlay
