package core

import (
	"sort"
	"strings"
)

// BranchDirectory maps a branch number to its branch name.
type BranchDirectory map[string]string

// defaultBranches is the bank's branch list as of the 2024 filing year.
var defaultBranches = BranchDirectory{
	"1":  "Fitzgerald Main",
	"2":  "Fitzgerald West",
	"3":  "Ashburn",
	"4":  "Rochelle",
	"5":  "Pitts",
	"6":  "Sylvester",
	"7":  "Tifton Main",
	"8":  "Tifton Eighth Street",
	"9":  "Albany Dawson Road",
	"10": "Albany Westover",
	"11": "Leesburg",
	"12": "Americus",
	"13": "Cordele",
	"14": "Moultrie",
	"15": "Quitman",
	"16": "Valdosta Baytree",
	"17": "Valdosta Norman Drive",
	"18": "Douglas Main",
	"19": "Douglas Ward Street",
	"20": "Broxton",
	"21": "Soperton",
	"22": "Eastman",
	"23": "Thomaston",
	"24": "Warner Robins",
	"25": "Centerville",
	"26": "Macon",
	"27": "Statesboro",
	"28": "Savannah",
	"29": "Richmond Hill",
	"30": "Columbus",
	"31": "Athens",
	"32": "Watkinsville",
	"33": "Alpharetta",
	"34": "Brunswick",
	"35": "St. Simons",
	"36": "Thomasville",
	"37": "Cairo",
	"38": "Bainbridge",
	"39": "Camilla",
	"40": "Dublin",
	"41": "Vidalia",
	"42": "Hazlehurst",
	"43": "Waycross",
	"44": "Nashville",
	"45": "Adel",
	"46": "Lakeland",
	"47": "Ocilla",
	"48": "Mortgage Division",
}

// DefaultBranches returns a copy of the built-in branch directory.
func DefaultBranches() BranchDirectory {
	out := make(BranchDirectory, len(defaultBranches))
	for k, v := range defaultBranches {
		out[k] = v
	}
	return out
}

// Name returns the branch name for a branch number.
// Leading zeros and whitespace in number are ignored.
func (d BranchDirectory) Name(number string) (string, bool) {
	name, ok := d[branchKey(number)]
	return name, ok
}

// Numbers returns the branch numbers in numeric order.
func (d BranchDirectory) Numbers() []string {
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

func branchKey(number string) string {
	n := strings.TrimLeft(strings.TrimSpace(number), "0")
	if n == "" && strings.TrimSpace(number) != "" {
		return "0"
	}
	return n
}

// BranchLookup derives a branch number from a loan officer's name.
type BranchLookup interface {
	BranchFor(officer string) (string, bool)
}

// StaticOfficerLookup is a fixed officer name to branch number map.
// Names match case- and accent-insensitively, as "First Last" or "Last, First".
type StaticOfficerLookup map[string]string

// NewStaticOfficerLookup builds a lookup from officer name to branch number.
func NewStaticOfficerLookup(officers map[string]string) StaticOfficerLookup {
	l := make(StaticOfficerLookup, len(officers))
	for name, branch := range officers {
		if key := officerKey(name); key != "" {
			l[key] = strings.TrimSpace(branch)
		}
	}
	return l
}

// BranchFor implements BranchLookup.
func (l StaticOfficerLookup) BranchFor(officer string) (string, bool) {
	key := officerKey(officer)
	if key == "" {
		return "", false
	}
	branch, ok := l[key]
	return branch, ok && branch != ""
}

// officerKey folds a name to "first last", reordering "Last, First".
func officerKey(name string) string {
	if i := strings.Index(name, ","); i >= 0 {
		name = name[i+1:] + " " + name[:i]
	}
	return foldText(name)
}
