package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/openai/openai-go"
)

const allowedMathChars = "0123456789+-*/.() "

func mathTool() Tool {
	return Tool{
		Name:        "calculate_math",
		Description: "Perform basic math calculations",
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"expression": map[string]interface{}{
					"type":        "string",
					"description": "Mathematical expression to evaluate (e.g., '2 + 2', '10 * 5')",
				},
			},
			"required": []string{"expression"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (Result, error) {
			expression, _ := stringArg(args, "expression")
			return Calculate(expression), nil
		},
	}
}

// Calculate evaluates an arithmetic expression made of numbers, + - * /,
// and parentheses. Failures are reported in the result.
func Calculate(expression string) Result {
	var invalid []string
	for _, c := range expression {
		if !strings.ContainsRune(allowedMathChars, c) {
			invalid = append(invalid, string(c))
		}
	}
	if len(invalid) > 0 {
		return mathError(expression, "ValueError", fmt.Sprintf("Invalid expression: invalid characters in expression: %v", invalid))
	}

	if strings.TrimSpace(expression) == "" {
		return mathError(expression, "SyntaxError", "Calculation error: empty expression")
	}

	program, err := expr.Compile(expression, expr.AsFloat64())
	if err != nil {
		if isDivisionByZero(err) {
			return mathError(expression, "ZeroDivisionError", "Division by zero")
		}
		return mathError(expression, "SyntaxError", fmt.Sprintf("Calculation error: %v", err))
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		if isDivisionByZero(err) {
			return mathError(expression, "ZeroDivisionError", "Division by zero")
		}
		return mathError(expression, "ValueError", fmt.Sprintf("Invalid expression: %v", err))
	}
	value, ok := out.(float64)
	if !ok {
		return mathError(expression, "ValueError", fmt.Sprintf("Invalid expression: unexpected result %v", out))
	}
	// Division by zero surfaces as an infinite or undefined float.
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return mathError(expression, "ZeroDivisionError", "Division by zero")
	}

	resultType := "float"
	if !strings.ContainsAny(expression, "./") && value == float64(int64(value)) {
		resultType = "int"
	}
	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	return Result{
		"expression":       expression,
		"result":           value,
		"formatted_result": fmt.Sprintf("%s = %s", expression, formatted),
		"result_type":      resultType,
	}
}

func mathError(expression, kind, msg string) Result {
	return Result{
		"expression": expression,
		"error":      msg,
		"error_type": kind,
		"result":     nil,
	}
}

func isDivisionByZero(err error) bool {
	return strings.Contains(err.Error(), "divide by zero") || strings.Contains(err.Error(), "division by zero")
}
