package command

const usageText = `regexlab - regex tester and pattern library

Usage: regexlab [--config PATH] [--data-dir DIR] <command> [options] [args]

Commands:
  test <pattern> <text>             Test a pattern and show every match
  library list                      List the built-in patterns
  library test <name> <text>        Test a built-in pattern
  find <pattern> <text>             Print every matched string
  replace <pattern> <repl> <text>   Preview a substitution
  split <pattern> <text>            Split text around the pattern
  history                           Show recently tested patterns
  favorite add <name> <pattern>     Save a named pattern
  favorite list                     List saved patterns
  export <pattern> <text> <output>  Write matches to a file

Matching options (test, find, replace, split, export):
  -i, --ignorecase   Case-insensitive matching
  -m, --multiline    ^ and $ match at line boundaries
  -s, --dotall       Dot matches newlines

A pattern argument of the form @name uses the saved favorite "name".
Use "--" before a pattern or text that starts with "-".

Run 'regexlab help <command>' for command options.

Examples:
  regexlab test "\d+" "abc 123 def 456"
  regexlab test "(\d{3})-(\d{4})" "call 555-1234" -g
  regexlab library test email "user@example.com"
  regexlab replace "\d+" "X" "abc 123 def 456" -c 1
  regexlab favorite add digits "\d+" --description "Runs of digits"
  regexlab export "\w+" "one two" words.csv -f csv
`

var commandUsage = map[string]string{
	"test": `Usage: regexlab test <pattern> <text> [options]

Test a pattern and show every match, then record it in the history.

Options:
  -i, --ignorecase   Case-insensitive matching
  -m, --multiline    ^ and $ match at line boundaries
  -s, --dotall       Dot matches newlines
  -g, --groups       Show capturing groups
`,
	"library": `Usage: regexlab library list
       regexlab library test <name> <text> [-g]
`,
	"library list": `Usage: regexlab library list

List the built-in patterns with their descriptions and examples.
`,
	"library test": `Usage: regexlab library test <name> <text> [options]

Test a built-in pattern, then record it in the history.

Options:
  -g, --groups   Show capturing groups
`,
	"find": `Usage: regexlab find <pattern> <text> [options]

Print every matched string.

Options:
  -i, --ignorecase   Case-insensitive matching
  -m, --multiline    ^ and $ match at line boundaries
  -s, --dotall       Dot matches newlines
`,
	"replace": `Usage: regexlab replace <pattern> <replacement> <text> [options]

Preview a substitution. Nothing is written. The replacement may refer to
groups as $1, ${name}, \1 or \g<name>.

Options:
  -i, --ignorecase   Case-insensitive matching
  -m, --multiline    ^ and $ match at line boundaries
  -s, --dotall       Dot matches newlines
  -c, --count N      Maximum number of replacements (0 = all)
`,
	"split": `Usage: regexlab split <pattern> <text> [options]

Split text around the pattern.

Options:
  -i, --ignorecase   Case-insensitive matching
  -m, --multiline    ^ and $ match at line boundaries
  -s, --dotall       Dot matches newlines
      --max N        Maximum number of splits (0 = unlimited)
`,
	"history": `Usage: regexlab history [options]

Show recently tested patterns, newest first.

Options:
  -n, --count N   Number of entries to show (0 = all)
`,
	"favorite": `Usage: regexlab favorite add <name> <pattern> [--description TEXT]
       regexlab favorite list
`,
	"favorite add": `Usage: regexlab favorite add <name> <pattern> [options]

Save a named pattern. An existing favorite with the same name is replaced.

Options:
      --description TEXT   Pattern description
`,
	"favorite list": `Usage: regexlab favorite list

List saved patterns, oldest first.
`,
	"export": `Usage: regexlab export <pattern> <text> <output> [options]

Write every matched string to a file.

Options:
  -i, --ignorecase    Case-insensitive matching
  -m, --multiline     ^ and $ match at line boundaries
  -s, --dotall        Dot matches newlines
  -f, --format FMT    json, csv or txt (default json)
`,
}

// Usage returns the help text for topic, or the general usage when topic
// is empty or unknown.
func Usage(topic string) string {
	if text, ok := commandUsage[topic]; ok {
		return text
	}
	return usageText
}
