package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutePythonLiteralOutput(t *testing.T) {
	svc := NewExecutionService()

	result := svc.Execute("print('Hello, patterns!')", "python")
	assert.Equal(t, "success", result.Status)
	assert.Contains(t, result.Output, "Hello, patterns!")
}

func TestExecutePythonStarSquare(t *testing.T) {
	svc := NewExecutionService()

	code := "n = 3\nfor i in range(n):\n    print('*' * n)"
	result := svc.Execute(code, "python")
	assert.Equal(t, "success", result.Status)
	assert.Contains(t, result.Output, "***\n***\n***\n")
}

func TestExecuteJavaScript(t *testing.T) {
	svc := NewExecutionService()

	result := svc.Execute("console.log('row one');", "javascript")
	assert.Contains(t, result.Output, "row one")
	assert.Equal(t, "javascript", result.Language)
}

func TestExecuteJava(t *testing.T) {
	svc := NewExecutionService()

	result := svc.Execute(`System.out.println("done");`, "java")
	assert.Contains(t, result.Output, "done")
}

func TestExecuteUnsupportedLanguage(t *testing.T) {
	svc := NewExecutionService()

	result := svc.Execute("puts '*'", "ruby")
	assert.Contains(t, result.Output, "not supported")
}
