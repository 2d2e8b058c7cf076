// Command summarizer is the CLI for the staged document review workflow:
// register documents, generate and correct stage summaries, approve or
// withdraw stages, and export the final summary next to the source file.
package main
