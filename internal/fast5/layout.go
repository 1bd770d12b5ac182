package fast5

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/vvka-141/porekit/pkg/porekit"
)

// Well-known group paths.
const (
	PathAnalyses       = "Analyses"
	PathGlobalKey      = "UniqueGlobalKey"
	PathEventDetection = "Analyses/EventDetection_000"
	PathReads          = "Analyses/EventDetection_000/Reads"
	PathChannelID      = "UniqueGlobalKey/channel_id"
	PathTrackingID     = "UniqueGlobalKey/tracking_id"
)

// Basecall analysis bases, in the order their results are applied.
// 1D results are read last and win over 2D results for the same strand.
const (
	Basecall2D = "Basecall_2D"
	Basecall1D = "Basecall_1D"
)

// Strand names a basecalled sub-result.
type Strand string

const (
	StrandTemplate   Strand = "template"
	StrandComplement Strand = "complement"
	Strand2D         Strand = "2D"
)

// Strands lists every strand in output order.
var Strands = []Strand{StrandTemplate, StrandComplement, Strand2D}

// ParseStrand maps a strand name to its Strand.
func ParseStrand(s string) (Strand, error) {
	for _, st := range Strands {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown strand %q (want template, complement or 2D)", s)
}

// Group returns the subgroup name holding the strand's calls.
func (s Strand) Group() string {
	return "BaseCalled_" + string(s)
}

// FastqPath returns the FASTQ dataset path for s inside analysis group.
func (s Strand) FastqPath(analysis string) string {
	return analysis + "/" + s.Group() + "/Fastq"
}

// AnalysisGroups returns the paths of the groups under Analyses named
// exactly <base>_NNN, ordered by number. Suffixed names such as
// Basecall_1D_000_old are not analysis results and are left out.
func AnalysisGroups(c porekit.Container, base string) ([]string, error) {
	children, err := c.Children(PathAnalyses)
	if err != nil {
		return nil, err
	}

	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `_\d{3}$`)
	var groups []string
	for _, name := range children {
		if pattern.MatchString(name) {
			groups = append(groups, name)
		}
	}
	slices.Sort(groups)

	paths := make([]string, len(groups))
	for i, g := range groups {
		paths[i] = PathAnalyses + "/" + g
	}
	return paths, nil
}

// BasecallGroups returns every basecall analysis group, 2D groups before 1D.
func BasecallGroups(c porekit.Container) ([]string, error) {
	var all []string
	for _, base := range []string{Basecall2D, Basecall1D} {
		groups, err := AnalysisGroups(c, base)
		if err != nil {
			return nil, err
		}
		all = append(all, groups...)
	}
	return all, nil
}

// ReadNode returns the path of the first read group under
// Analyses/EventDetection_000/Reads.
func ReadNode(c porekit.Container) (string, error) {
	children, err := c.Children(PathReads)
	if err != nil {
		return "", err
	}
	if len(children) == 0 {
		return "", fmt.Errorf("%s has no reads: %w", PathReads, porekit.ErrPathNotFound)
	}
	return PathReads + "/" + children[0], nil
}
