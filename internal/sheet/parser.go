package sheet

import (
	"io"
	"net/http"
	"strings"
	"time"

	"salary-system/internal/shared/apperror"

	"github.com/xuri/excelize/v2"
)

// Worksheet selection is by substring against these fragments; column
// headers inside the sheet stay free-text and go through the fuzzy
// matcher instead.
var sheetNameFragments = map[DataGroup][]string{
	GroupEarnings: {"薪资项目明细", "薪资明细"},
	GroupBases:    {"缴费基数", "社保基数"},
	GroupCategory: {"人员类别", "员工类别"},
	GroupJob:      {"岗位任职", "任职信息"},
}

// Row is one spreadsheet line keyed by header text. Values are display
// strings; numeric coercion happens downstream.
type Row map[string]string

// AnalyzeFunc receives the header row of a parsed group for diagnostic
// field-mapping feedback. It runs asynchronously and never blocks or
// fails the parse.
type AnalyzeFunc func(group DataGroup, headers []string)

var ErrWorkbook = apperror.New(
	apperror.CodeParseError,
	"The uploaded file is not a readable workbook",
	http.StatusBadRequest,
)

type Parser struct {
	f       *excelize.File
	analyze AnalyzeFunc
}

// Open reads the workbook once; every group parse reuses it.
func Open(r io.Reader) (*Parser, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeParseError, ErrWorkbook.Message, http.StatusBadRequest)
	}
	return &Parser{f: f}, nil
}

func (p *Parser) Close() error {
	return p.f.Close()
}

func (p *Parser) SetAnalyzeFunc(fn AnalyzeFunc) {
	p.analyze = fn
}

// SheetFor picks the worksheet for a data group by name fragment; the
// first sheet is the fallback when nothing matches.
func (p *Parser) SheetFor(group DataGroup) string {
	sheets := p.f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}

	for _, fragment := range sheetNameFragments[group] {
		for _, name := range sheets {
			if strings.Contains(name, fragment) {
				return name
			}
		}
	}
	return sheets[0]
}

// Headers returns the group's header row in sheet order, untrimmed, for
// callers that analyze column mappings without reading the data rows.
// Whitespace is preserved so mapping diagnostics can flag a header with
// a stray space as fuzzy rather than exact.
func (p *Parser) Headers(group DataGroup) ([]string, error) {
	sheetName := p.SheetFor(group)
	if sheetName == "" {
		return nil, ErrWorkbook
	}

	raw, err := p.f.GetRows(sheetName)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeParseError, ErrWorkbook.Message, http.StatusBadRequest)
	}
	if len(raw) == 0 {
		return []string{}, nil
	}

	headers := make([]string, 0, len(raw[0]))
	for _, h := range raw[0] {
		if strings.TrimSpace(h) != "" {
			headers = append(headers, h)
		}
	}
	return headers, nil
}

// Rows converts the group's worksheet into header-keyed rows. Dates are
// normalized to yyyy-mm-dd; everything else stays as displayed.
func (p *Parser) Rows(group DataGroup) ([]Row, error) {
	sheetName := p.SheetFor(group)
	if sheetName == "" {
		return nil, ErrWorkbook
	}

	raw, err := p.f.GetRows(sheetName)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeParseError, ErrWorkbook.Message, http.StatusBadRequest)
	}
	if len(raw) == 0 {
		return []Row{}, nil
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = strings.TrimSpace(h)
	}

	if p.analyze != nil {
		// Diagnostic side channel only; the parse does not wait for it.
		// Raw headers, so a stray space still shows up in the mapping
		// feedback even though row keys are trimmed.
		raw0 := append([]string(nil), raw[0]...)
		go p.analyze(group, raw0)
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" || i >= len(cells) {
				continue
			}
			v := normalizeCell(cells[i])
			if v != "" {
				empty = false
			}
			row[h] = v
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Layouts excelize renders date cells with, plus the hand-typed forms
// spreadsheet authors actually use.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"01-02-06",
	"1/2/2006",
	"2006年1月2日",
	"2006年01月02日",
}

func normalizeCell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return v
}
