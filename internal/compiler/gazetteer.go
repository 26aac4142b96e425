package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/ccgdrs/internal/drt"
)

var (
	monthPattern   = regexp.MustCompile(`^((Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?|January|February|March|April|June|July|August|September|October|November|December)$`)
	weekdayPattern = regexp.MustCompile(`^((Mon|Tue|Tues|Wed|Thur|Thurs|Fri|Sat|Sun)\.?|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)$`)
)

var months = map[string]string{
	"Jan": "January", "Feb": "February", "Mar": "March", "Apr": "April",
	"May": "May", "Jun": "June", "Jul": "July", "Aug": "August",
	"Sep": "September", "Sept": "September", "Oct": "October",
	"Nov": "November", "Dec": "December",
}

var weekdays = map[string]string{
	"Mon": "Monday", "Tue": "Tuesday", "Tues": "Tuesday", "Wed": "Wednesday",
	"Thur": "Thursday", "Thurs": "Thursday", "Fri": "Friday",
	"Sat": "Saturday", "Sun": "Sunday",
}

// dateRelation returns the canonical calendar relation for a proper noun,
// such as month.january or weekday.monday.
func dateRelation(word string) (string, bool) {
	w := strings.TrimSuffix(word, ".")
	switch {
	case monthPattern.MatchString(word):
		if full, ok := months[w]; ok {
			w = full
		}
		return "month." + strings.ToLower(w), true
	case weekdayPattern.MatchString(word):
		if full, ok := weekdays[w]; ok {
			w = full
		}
		return "weekday." + strings.ToLower(w), true
	}
	return "", false
}

// defaultPronouns maps a pronoun to a DRS with one free referent, the
// pronoun's own referent. Possessives describe the possessed object.
var defaultPronouns = map[string]string{
	"i":     `[| [| i(x)] ⇒ [| me(x),is.anaphora(x)]]`,
	"me":    `[| me(x),is.anaphora(x)]`,
	"we":    `[| [| we(x)] ⇒ [| us(x),is.anaphora(x)]]`,
	"us":    `[| us(x),is.anaphora(x)]`,
	"you":   `[| you(x),is.anaphora(x)]`,
	"he":    `[| [| he(x)] ⇒ [| him(x),is.anaphora(x)]]`,
	"she":   `[| [| she(x)] ⇒ [| her(x),is.anaphora(x)]]`,
	"him":   `[| [| him(x),is.anaphora(x)] ⇒ [| male(x)]]`,
	"her":   `[| [| her(x),is.anaphora(x)] ⇒ [| female(x)]]`,
	"it":    `[| it(x),is.anaphora(x)]`,
	"they":  `[| [| they(x)] ⇒ [| them(x),is.anaphora(x)]]`,
	"them":  `[| them(x),is.anaphora(x)]`,
	"his":   `[| [| his(x)] ⇒ [y| him(y),is.anaphora(y),owns(y,x)]]`,
	"its":   `[| [| its(x)] ⇒ [y| it(y),is.anaphora(y),owns(y,x)]]`,
	"their": `[| [| their(x)] ⇒ [y| them(y),is.anaphora(y),owns(y,x)]]`,
	"who":   `[| who(x),is.anaphora(x)]`,
	"which": `[| which(x),is.anaphora(x)]`,
	"that":  `[| that(x),is.anaphora(x)]`,
}

// pronounTable is the parsed pronoun gazetteer. It is read only once built.
type pronounTable map[string]*drt.DRS

// newPronounTable parses the default templates with overrides applied.
// Every template must leave exactly one referent free.
func newPronounTable(overrides map[string]string) (pronounTable, error) {
	t := make(pronounTable, len(defaultPronouns)+len(overrides))
	add := func(word, text string) error {
		d, err := drt.Parse(text)
		if err != nil {
			return fmt.Errorf("pronoun %q: %w", word, err)
		}
		if n := len(drt.FreeRefs(d)); n != 1 {
			return fmt.Errorf("pronoun %q: template must have one free referent, has %d", word, n)
		}
		t[strings.ToLower(word)] = d
		return nil
	}
	for w, s := range defaultPronouns {
		if err := add(w, s); err != nil {
			return nil, err
		}
	}
	for w, s := range overrides {
		if err := add(w, s); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// instantiate binds the template's free referent to r.
func (t pronounTable) instantiate(word string, r drt.Ref) (*drt.DRS, bool) {
	d, ok := t[word]
	if !ok {
		return nil, false
	}
	free := drt.FreeRefs(d)[0]
	rs := drt.Renaming{{From: free, To: r}}
	if vars := drt.Variables(d); r != free && drt.ContainsRef(vars, r) {
		moved := drt.NewRefs([]drt.Ref{r}, append(vars, r))[0]
		rs = append(drt.Renaming{{From: r, To: moved}}, rs...)
	}
	return drt.RenameAll(d, rs).(*drt.DRS), true
}
