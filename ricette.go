// Package ricette crawls a recipe website, extracts structured recipe
// records, and persists them in numbered chunk files so that an interrupted
// crawl resumes where it left off.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package ricette
