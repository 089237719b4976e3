package service

import (
	"fmt"
	"regexp"
	"strings"
)

// ExecutionService 无沙箱的执行模拟：只做字面量提取和
// 已知图案循环的粗略还原，绝不真正执行用户代码。
type ExecutionService struct{}

func NewExecutionService() *ExecutionService {
	return &ExecutionService{}
}

// ExecutionResult 模拟执行的统一返回，status只有success/error
type ExecutionResult struct {
	Output        string `json:"output"`
	Language      string `json:"language"`
	ExecutionTime string `json:"execution_time"`
	Status        string `json:"status"`
}

var (
	pyPrintRe   = regexp.MustCompile(`print\(["'](.*?)["']`)
	jsLogRe     = regexp.MustCompile(`console\.log\(["'](.*?)["']`)
	javaPrintRe = regexp.MustCompile(`System\.out\.print(?:ln)?\(["'](.*?)["']`)
	sizeRe      = regexp.MustCompile(`n\s*=\s*(\d+)`)
)

func (s *ExecutionService) Execute(code string, language string) *ExecutionResult {
	result := &ExecutionResult{
		Language:      language,
		ExecutionTime: "0.1s",
		Status:        "success",
	}

	switch language {
	case "python":
		result.Output = simulatePython(code)
	case "javascript":
		result.Output = simulateJavaScript(code)
	case "java":
		result.Output = simulateJava(code)
	default:
		result.Output = fmt.Sprintf("Language '%s' not supported for execution", language)
	}

	return result
}

func simulatePython(code string) string {
	var out strings.Builder

	switch {
	case strings.Contains(code, "print"):
		for _, m := range pyPrintRe.FindAllStringSubmatch(code, -1) {
			if m[1] != "" && m[1] != "*" {
				out.WriteString(m[1] + "\n")
			}
		}

		// print('*')配合for range的简易方阵还原
		if strings.Contains(code, "print('*'") && strings.Contains(code, "for") {
			if strings.Contains(code, "range") {
				if m := sizeRe.FindStringSubmatch(code); m != nil {
					n := 0
					fmt.Sscanf(m[1], "%d", &n)
					for i := 0; i < n; i++ {
						out.WriteString(strings.Repeat("*", n) + "\n")
					}
				} else {
					out.WriteString("Simulated pattern output\n")
				}
			}
		}
	case strings.Contains(code, "for") && strings.Contains(code, "*"):
		out.WriteString("Simulated pattern execution\n")
	default:
		out.WriteString("Code executed successfully\n")
	}

	return out.String()
}

func simulateJavaScript(code string) string {
	var out strings.Builder

	if strings.Contains(code, "console.log") {
		for _, m := range jsLogRe.FindAllStringSubmatch(code, -1) {
			if m[1] != "" && m[1] != "*" {
				out.WriteString(m[1] + "\n")
			}
		}
		if strings.Contains(code, "console.log('*'") {
			if strings.Contains(code, "for") {
				out.WriteString("Simulated JavaScript pattern output\n")
			} else {
				out.WriteString("*\n")
			}
		}
	} else {
		out.WriteString("JavaScript code executed\n")
	}

	return out.String()
}

func simulateJava(code string) string {
	var out strings.Builder

	if strings.Contains(code, "System.out.print") {
		for _, m := range javaPrintRe.FindAllStringSubmatch(code, -1) {
			if m[1] != "" && m[1] != "*" {
				out.WriteString(m[1] + "\n")
			}
		}
		if strings.Contains(code, "*") {
			out.WriteString("Simulated Java pattern output\n")
		}
	} else {
		out.WriteString("Java code executed\n")
	}

	return out.String()
}
