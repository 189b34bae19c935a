// Package coursemd parses the course authoring dialect: a markdown document
// split into "# Module N: Title" and "## Unit N: Title" sections, carrying
// fenced :::self-assessment, :::tutor-marked and :::video blocks. Parsing is
// total and side-effect free; Serialize performs the approximate inverse.
package coursemd
