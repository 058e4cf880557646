// Package toon implements TOON v2.0 (Token-Oriented Object Notation),
// a compact indentation-structured text format for passing structured
// data to LLMs with fewer tokens than JSON.
//
// TOON is designed to be:
//   - Token-cheap on repetitive/tabular data (CSV-like rows)
//   - Human-readable (YAML-like indentation, no braces)
//   - Explicit about shape (every array declares its length)
//   - Round-trippable to and from JSON
//
// # Syntax
//
// Object:          key: value, one entry per line, children indented
// Primitive array: [3]: a,b,c
// Tabular array:   [2]{id,name}: followed by one delimited row per item
// List array:      [2]: followed by one "- item" line per item
// Null:            null
// Bool:            true / false
// String:          bare_word or "quoted string"
//
// Every array opens with a header of the form [N<delim?>]{fields?}:
// where N is the item count, the optional delimiter byte selects tab or
// pipe instead of the default comma, and the optional field list turns
// the body into a table.
//
// # Example
//
//	context:
//	  location: Boulder
//	  season: spring_2025
//	hikes[2]{id,name,distanceKm}:
//	  1,Chautauqua,5.4
//	  2,Sky Pond,14.5
//	tags[3]: easy,scenic,dog_friendly
//
// # Strict Mode
//
// Decoding is strict by default: declared lengths must match item
// counts, tabular rows must match the field list width, indentation
// must be an exact multiple of the configured indent, and structural
// lines must carry a colon. Lenient mode recovers where it can.
package toon
