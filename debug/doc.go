// Package debug holds environment switched tracing for jsc.
//
// Each switch is read once at start up:
//
//	JSC_DEBUG_EXTRACT   document boundary scanning
//	JSC_DEBUG_RESOLVE   shape resolution and $ref following
//	JSC_DEBUG_REGISTRY  registry population and pointer lookups
//	JSC_DEBUG_EMIT      SQL and Markdown emitters
package debug
