// Package passwords parses and checks password policy entries.
//
// An entry is a line of the form
//
//	1-3 a: abcde
//
// where the text before ": " is the rule and the text after it is the
// subject. The same rule text is read one of two ways, selected by Kind:
//
//   - KindCount: the subject must contain the character between 1 and 3 times.
//   - KindPosition: exactly one of positions 1 and 3 (1-based, counted in
//     runes) of the subject must hold the character.
//
// Rule is a closed variant; the Kind tag selects the validation and no other
// kinds exist.
//
// # Basic Usage
//
//	entry, err := passwords.ParseEntry("1-3 a: abcde", passwords.KindCount)
//	if err != nil {
//	    return err
//	}
//	ok, err := entry.Valid()
//
// Counting a whole input file:
//
//	result, err := passwords.Evaluate(text, passwords.KindPosition, passwords.Options{})
//	fmt.Println(result.Valid)
package passwords
