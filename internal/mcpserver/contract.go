package mcpserver

// JournalFormatContract describes the plain-text journal layout that
// LLM consumers should follow when reading or adding entries.
const JournalFormatContract = `# Work Journal Format

The journal is one UTF-8 plain-text file. Days are stacked newest first;
a new day is added above everything else.

## Day section

` + "```" + `text



2026-02-01
==========

TODO
- plan the release
  . write the changelog

[오전 10:30]
- shipped the fix

#TIL
- sqlite WAL mode

노트:
lunch with the team
` + "```" + `

- A day starts at a line of exactly ten characters shaped like YYYY-MM-DD
  and runs until the next such line.
- The date line is followed by a line of ten ` + "`" + `=` + "`" + ` and a blank line.

## Sub-sections

A sub-section starts at a header line and runs until the next header line
or the end of the day. Header lines are:

1. ` + "`" + `TODO` + "`" + ` exactly. At most one is edited per day with ` + "`" + `set_todo` + "`" + `.
2. ` + "`" + `[<오전|오후> HH:MM]` + "`" + ` for finished work. HH is the 24-hour hour.
3. ` + "`" + `#tag` + "`" + ` for tagged notes.
4. ` + "`" + `노트:` + "`" + ` for notes without a tag.

Headers may repeat within a day; every add_done and add_note call appends a
new sub-section at the end of today.

## Bullets

Bodies are free text. Lines starting with "- ", ". " or "* " after their
indentation are bullets and are rewritten by indentation: even indentation
gets ` + "`" + `-` + "`" + `, odd indentation gets ` + "`" + `.` + "`" + `. Indent nested items by one space.

## Rules

1. Never write a line that looks like a date (YYYY-MM-DD alone) inside a
   body; it would start a new day.
2. Do not start body lines with ` + "`" + `[` + "`" + `, ` + "`" + `#` + "`" + `, ` + "`" + `노트` + "`" + ` or the word ` + "`" + `TODO` + "`" + `
   alone; they would start a new sub-section.
3. Pass the checksum you read as ` + "`" + `if_match` + "`" + ` to avoid overwriting a
   concurrent edit.
`
