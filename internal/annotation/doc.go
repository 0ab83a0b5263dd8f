// Package annotation manages ontology annotations embedded in part
// descriptions.
//
// A rich description marks each mention of an annotated term as a Markdown
// link whose destination is the annotation ID:
//
//	It was tested in [E. coli](http://identifiers.org/taxonomy:562).
//
// Parse turns a rich description into a Document: the plain text plus one
// Annotation per distinct ID, each holding the mentions where it occurs.
// Every mention is an alias on the document's annotate.TextBuffer, so
// enabling or disabling an annotation decides whether its links appear when
// the rich description is rendered, and editing the plain text keeps the
// mentions anchored to their words.
package annotation
