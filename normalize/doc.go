// Package normalize reduces free-form text to the canonical form that is hashed
// for provenance identifiers.
//
// Two policies exist:
//
//   - Prompt trims every line independently and then the whole text, so that
//     indentation and trailing blanks in system prompts do not change their hash.
//     Blank lines between paragraphs are kept.
//   - Output trims the whole text and collapses runs of spaces, leaving newlines
//     and every other character untouched.
//
// Neither policy changes letter case. Both are idempotent and total: any string,
// including the empty string, is accepted.
package normalize
