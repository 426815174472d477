// Package cli implements the interactive VoiceVote client.
//
// It wires the API client, local session store, wallet connector, media
// uploader and enrichment client behind a small REPL. Command handlers live
// on the App type; runREPL only parses input and dispatches.
package cli
