// Package cardex extracts debate cards from HTML exports of evidence
// documents and turns them into fine-tuning training examples. A card is
// one unit of argumentative evidence: a short tag (the claim), a citation
// line, and a body with formatting spans (underline, emphasis, highlight)
// marking the words a debater would read.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, openai/).
package cardex
