package validation

import (
	"bytes"
	"fmt"
	"text/template"

	prommodel "github.com/prometheus/common/model"
	promqlparser "github.com/prometheus/prometheus/promql/parser"

	"github.com/rcreports/uptimechart/pkg/common/conventions"
	commonerrors "github.com/rcreports/uptimechart/pkg/common/errors"
)

// PromQLValidator validates the PromQL bits used by the Prometheus data backend.
const PromQLValidator = promQLValidator(false)

type promQLValidator bool

func (promQLValidator) ValidateLabelKey(k string) error {
	if k == prommodel.MetricNameLabel {
		return fmt.Errorf("the label key %q is not allowed", prommodel.MetricNameLabel)
	}
	if !prommodel.LabelName(k).IsValid() {
		return fmt.Errorf("the label key %q is not valid", k)
	}

	return nil
}

func (promQLValidator) ValidateLabelValue(k string) error {
	if k == "" {
		return fmt.Errorf("the label value is required")
	}

	if !prommodel.LabelValue(k).IsValid() {
		return fmt.Errorf("the label value %q is not valid", k)
	}

	return nil
}

// ValidateLabels validates a label set used as a series selector.
func (v promQLValidator) ValidateLabels(labels map[string]string) error {
	for k, lv := range labels {
		if err := v.ValidateLabelKey(k); err != nil {
			return err
		}
		if err := v.ValidateLabelValue(lv); err != nil {
			return fmt.Errorf("label %q: %w", k, err)
		}
	}
	return nil
}

var promExprTplAllowedFakeData = map[string]string{
	conventions.PromQueryTPLKeyWindow:   "1m",
	conventions.PromQueryTPLKeySelector: `{service="fake"}`,
}

// ValidateQueryExpression renders the query template with fake data and
// checks the result is a correct PromQL expression.
func (promQLValidator) ValidateQueryExpression(queryExpression string) error {
	if queryExpression == "" {
		return fmt.Errorf("query: %w", commonerrors.ErrRequired)
	}

	tpl, err := template.New("expr").Option("missingkey=error").Parse(queryExpression)
	if err != nil {
		return err
	}

	var tplB bytes.Buffer
	err = tpl.Execute(&tplB, promExprTplAllowedFakeData)
	if err != nil {
		return err
	}

	_, err = promqlparser.ParseExpr(tplB.String())

	return err
}
