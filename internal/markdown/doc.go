// Package markdown loads course files from disk, parses them into units and
// renders unit content to HTML with goldmark. Video placeholders left by the
// parser become separate segments so hosts can embed a player in their place.
package markdown
