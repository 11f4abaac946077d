package payrollimport

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"salary-system/internal/catalog"
	"salary-system/internal/sheet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RuleType string

const (
	RuleString RuleType = "string"
	RuleNumber RuleType = "number"
	RuleDate   RuleType = "date"
	RuleEmail  RuleType = "email"
	RuleIDCard RuleType = "idcard"
)

// Rule validates one logical column. Aliases are checked in order and
// the first header present in the row wins, so the canonical spelling
// always takes precedence over looser variants.
type Rule struct {
	Field    string
	Aliases  []string
	Type     RuleType
	Required bool
	Min      *decimal.Decimal
	Max      *decimal.Decimal
	Pattern  *regexp.Regexp

	// Check is an optional custom validation hook; it returns an empty
	// string when the value passes.
	Check func(value string) string
}

// RuleProvider resolves the rule set for a data group. The production
// provider reads the live component catalog, so a newly created salary
// component is validated on the next upload without a deploy.
//
//go:generate mockgen -source=validator.go -destination=mock/rule_provider_mock.go -package=mock
type RuleProvider interface {
	RulesFor(ctx context.Context, group sheet.DataGroup) ([]Rule, error)
}

// Header spellings seen in real uploads, per canonical field. Order
// matters: the canonical name is first.
var fieldAliases = map[string][]string{
	catalog.FieldEmployeeName:     {catalog.FieldEmployeeName, "employee_name", "姓名", "员工"},
	catalog.FieldDepartment:       {catalog.FieldDepartment, "department", "所属部门"},
	catalog.FieldPosition:         {catalog.FieldPosition, "position", "职位"},
	catalog.FieldRank:             {catalog.FieldRank, "rank", "级别"},
	catalog.FieldCategory:         {catalog.FieldCategory, "category", "类别"},
	catalog.FieldInsuranceType:    {catalog.FieldInsuranceType, "insurance_type", "险种"},
	catalog.FieldContributionBase: {catalog.FieldContributionBase, "contribution_base", "基数"},
	catalog.FieldEffectiveDate:    {catalog.FieldEffectiveDate, "effective_date", "日期"},
	catalog.FieldNotes:            {catalog.FieldNotes, "notes", "说明"},
}

var (
	amountFloor = decimal.New(-99999999, -2) // -999,999.99
	amountCeil  = decimal.New(99999999, -2)
	baseFloor   = decimal.Zero
	baseCeil    = decimal.New(99999999, -2)
)

type catalogRuleProvider struct {
	catalogs catalog.Service
}

func NewCatalogRuleProvider(catalogs catalog.Service) RuleProvider {
	return &catalogRuleProvider{catalogs: catalogs}
}

func (p *catalogRuleProvider) RulesFor(ctx context.Context, group sheet.DataGroup) ([]Rule, error) {
	fc, err := p.catalogs.FieldCatalog(ctx, group)
	if err != nil {
		// Catalog resolution failing must not make uploads unverifiable;
		// fall back to the fixed structural rule set.
		zap.L().Named("import.rules").Warn("field catalog unavailable, using fallback rules",
			zap.String("group", string(group)), zap.Error(err))
		return FallbackRules(group), nil
	}

	rules := make([]Rule, 0, len(fc.Fields))
	for _, f := range fc.Fields {
		rules = append(rules, ruleForField(f))
	}
	return rules, nil
}

// FallbackRules is the pure, catalog-independent rule set: structural
// columns only, since component columns cannot be known without the
// catalog.
func FallbackRules(group sheet.DataGroup) []Rule {
	rules := []Rule{{
		Field:    catalog.FieldEmployeeName,
		Aliases:  aliasesFor(catalog.FieldEmployeeName),
		Type:     RuleString,
		Required: true,
	}}

	switch group {
	case sheet.GroupBases:
		rules = append(rules,
			Rule{
				Field:    catalog.FieldInsuranceType,
				Aliases:  aliasesFor(catalog.FieldInsuranceType),
				Type:     RuleString,
				Required: true,
			},
			Rule{
				Field:    catalog.FieldContributionBase,
				Aliases:  aliasesFor(catalog.FieldContributionBase),
				Type:     RuleNumber,
				Required: true,
				Min:      &baseFloor,
				Max:      &baseCeil,
			},
		)
	case sheet.GroupCategory:
		rules = append(rules, Rule{
			Field:    catalog.FieldCategory,
			Aliases:  aliasesFor(catalog.FieldCategory),
			Type:     RuleString,
			Required: true,
		})
	case sheet.GroupJob:
		rules = append(rules,
			Rule{
				Field:    catalog.FieldPosition,
				Aliases:  aliasesFor(catalog.FieldPosition),
				Type:     RuleString,
				Required: true,
			},
			Rule{
				Field:   catalog.FieldEffectiveDate,
				Aliases: aliasesFor(catalog.FieldEffectiveDate),
				Type:    RuleDate,
			},
		)
	}
	return rules
}

func ruleForField(f catalog.FieldDef) Rule {
	rule := Rule{
		Field:    f.Name,
		Aliases:  aliasesFor(f.Name),
		Required: f.Required,
		Type:     RuleString,
	}

	if !f.Structural {
		// Component columns hold money.
		rule.Type = RuleNumber
		rule.Min = &amountFloor
		rule.Max = &amountCeil
		return rule
	}

	switch f.Name {
	case catalog.FieldContributionBase:
		rule.Type = RuleNumber
		rule.Min = &baseFloor
		rule.Max = &baseCeil
	case catalog.FieldEffectiveDate:
		rule.Type = RuleDate
	}
	return rule
}

func aliasesFor(field string) []string {
	if aliases, ok := fieldAliases[field]; ok {
		return aliases
	}
	return []string{field}
}

const largeImportThreshold = 1000

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	idCardPattern = regexp.MustCompile(`^(\d{15}|\d{17}[\dXx])$`)
)

type Validator struct {
	provider RuleProvider
	logger   *zap.Logger
}

func NewValidator(provider RuleProvider) *Validator {
	return &Validator{
		provider: provider,
		logger:   zap.L().Named("import.validator"),
	}
}

// Validate checks every row of a group against the group's rule set.
// It never stops at the first failure: the operator gets the complete
// list in one pass.
func (v *Validator) Validate(ctx context.Context, group sheet.DataGroup, rows []sheet.Row) (ValidationResult, error) {
	rules, err := v.provider.RulesFor(ctx, group)
	if err != nil {
		return ValidationResult{}, err
	}

	result := ValidationResult{IsValid: true}

	if len(rows) > largeImportThreshold {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Sheet contains %d rows; the import may take a while", len(rows)))
	}

	seenNames := map[string]int{}
	warnedDupes := map[string]bool{}

	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header row

		for _, rule := range rules {
			value, present := valueFor(row, rule.Aliases)

			if value == "" {
				if rule.Required {
					msg := fmt.Sprintf("%s is required", rule.Field)
					if !present {
						msg = fmt.Sprintf("column %s is missing", rule.Field)
					}
					result.Errors = append(result.Errors, RowError{
						Row: rowNum, Group: group, Field: rule.Field, Message: msg,
					})
				}
				continue
			}

			if msg := checkValue(rule, value); msg != "" {
				result.Errors = append(result.Errors, RowError{
					Row: rowNum, Group: group, Field: rule.Field, Message: msg,
				})
			}
		}

		if name, _ := valueFor(row, aliasesFor(catalog.FieldEmployeeName)); name != "" {
			seenNames[name]++
			if seenNames[name] > 1 && !warnedDupes[name] {
				warnedDupes[name] = true
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Employee %q appears more than once in the %s sheet", name, group))
			}
		}
	}

	result.IsValid = len(result.Errors) == 0

	v.logger.Debug("group validated",
		zap.String("group", string(group)),
		zap.Int("rows", len(rows)),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)))

	return result, nil
}

// valueFor returns the first alias hit. present reports whether any
// alias exists as a column at all, to tell "blank cell" apart from
// "column missing".
func valueFor(row sheet.Row, aliases []string) (value string, present bool) {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok {
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v), true
			}
			present = true
		}
	}
	return "", present
}

func checkValue(rule Rule, value string) string {
	switch rule.Type {
	case RuleNumber:
		amount, err := parseAmount(value)
		if err != nil {
			return fmt.Sprintf("%s must be a number, got %q", rule.Field, value)
		}
		if rule.Min != nil && amount.LessThan(*rule.Min) {
			return fmt.Sprintf("%s must be at least %s", rule.Field, rule.Min.String())
		}
		if rule.Max != nil && amount.GreaterThan(*rule.Max) {
			return fmt.Sprintf("%s must be at most %s", rule.Field, rule.Max.String())
		}
	case RuleDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Sprintf("%s must be a date (yyyy-mm-dd), got %q", rule.Field, value)
		}
	case RuleEmail:
		if !emailPattern.MatchString(value) {
			return fmt.Sprintf("%s must be an email address", rule.Field)
		}
	case RuleIDCard:
		if !idCardPattern.MatchString(value) {
			return fmt.Sprintf("%s must be a 15 or 18 digit ID number", rule.Field)
		}
	}

	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return fmt.Sprintf("%s does not match the expected format", rule.Field)
	}
	if rule.Check != nil {
		if msg := rule.Check(value); msg != "" {
			return msg
		}
	}
	return ""
}

// parseAmount accepts the formats spreadsheet authors actually type:
// thousands separators, a currency mark, surrounding whitespace.
func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", "¥", "", "￥", "", " ", "").Replace(value)
	return decimal.NewFromString(cleaned)
}
