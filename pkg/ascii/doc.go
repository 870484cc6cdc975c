// Package ascii implements the text side of the flow-notation engine: it
// detects probable ASCII-art diagram blocks inside free-form prompt text,
// parses a detected block into a [flow.Data] graph, and renders a graph back
// into a plain-text diagram.
//
// The canonical emitted dialect uses Unicode box-drawing glyphs (┌┐└┘│─);
// the parser additionally accepts the plain-ASCII dialect (+, -, |) for
// robustness against hand-typed or LLM-generated art.
//
// All functions here are pure and total over their input domain: a negative
// result is communicated as nil (detector, parser) or an empty string
// (generator), never as an error. Callers fall back to other extraction
// strategies when no diagram is found.
package ascii
