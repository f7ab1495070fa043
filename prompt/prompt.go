// Package prompt asks the operator for report options on a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/device-eol-report/lifecycle"
	"github.com/aquasecurity/device-eol-report/utils"
)

type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Families asks which families to report on. An empty answer or "all"
// selects every device and returns nil.
func (p *Prompter) Families() ([]lifecycle.Family, error) {
	fmt.Fprintln(p.out, "Operating system families:")
	for i, f := range lifecycle.Families {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, f)
	}

	for {
		answer, err := p.ask("Select families (comma separated numbers or names, empty for all): ")
		if err != nil {
			return nil, err
		}
		families, err := parseFamilies(answer)
		if err == nil {
			return families, nil
		}
		fmt.Fprintln(p.out, err)
	}
}

// OnlyEOL asks whether the report is limited to end-of-life devices. Defaults to no.
func (p *Prompter) OnlyEOL() (bool, error) {
	for {
		answer, err := p.ask("Show only end-of-life devices? [y/N]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "", "n", "no":
			return false, nil
		case "y", "yes":
			return true, nil
		}
		fmt.Fprintf(p.out, "invalid answer: %s\n", answer)
	}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", xerrors.Errorf("failed to read answer: %w", err)
		}
		return "", io.ErrUnexpectedEOF
	}
	return utils.TrimSpaceNewline(p.scanner.Text()), nil
}

func parseFamilies(answer string) ([]lifecycle.Family, error) {
	if answer == "" || strings.EqualFold(answer, "all") {
		return nil, nil
	}

	var families []lifecycle.Family
	for _, s := range strings.Split(answer, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if n, err := strconv.Atoi(s); err == nil {
			if n < 1 || n > len(lifecycle.Families) {
				return nil, xerrors.Errorf("invalid selection: %d", n)
			}
			families = append(families, lifecycle.Families[n-1])
			continue
		}
		f := lifecycle.ParseFamily(s)
		if !f.IsValid() {
			return nil, xerrors.Errorf("unknown family: %s", s)
		}
		families = append(families, f)
	}
	return lo.Uniq(families), nil
}
