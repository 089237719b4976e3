package service

import (
	"fmt"
	"pattern_master_backend/internal/model"
	"strings"
)

// CodeFeedback 对学生提交的结构化点评
type CodeFeedback struct {
	Feedback         string   `json:"feedback"`
	Suggestions      []string `json:"suggestions"`
	CorrectnessScore float64  `json:"correctness_score"`
	Hints            []string `json:"hints"`
}

func BuildCodeFeedback(userCode string, pattern *model.Pattern) *CodeFeedback {
	return &CodeFeedback{
		Feedback:         feedbackText(userCode, pattern),
		Suggestions:      codeSuggestions(userCode, pattern),
		CorrectnessScore: CorrectnessScore(userCode, pattern),
		Hints:            ProgressiveHints(pattern, userCode),
	}
}

func feedbackText(userCode string, pattern *model.Pattern) string {
	if userCode == "" {
		return "Please write some code to get feedback!"
	}

	var parts []string

	if strings.Contains(userCode, "for") {
		parts = append(parts, "Good! You're using loops.")
	} else {
		parts = append(parts, "Try using loops to iterate through rows.")
	}

	if hasPrint(userCode) {
		parts = append(parts, "Great! You're printing output.")
	} else {
		parts = append(parts, "Don't forget to print the pattern!")
	}

	if pattern != nil && pattern.Loops > 1 {
		if strings.Count(userCode, "for") >= 2 {
			parts = append(parts, "Excellent! You're using nested loops correctly.")
		} else {
			parts = append(parts, "This pattern needs nested loops.")
		}
	}

	return strings.Join(parts, " ")
}

func codeSuggestions(userCode string, pattern *model.Pattern) []string {
	if userCode == "" {
		return []string{
			"Start by creating a variable for the pattern size",
			"Use a for loop to iterate through rows",
		}
	}

	var suggestions []string
	if strings.Contains(userCode, "for") && !strings.Contains(userCode, "range") {
		suggestions = append(suggestions, "Use range() function for loop iteration")
	}
	if pattern != nil && pattern.Conditions > 0 && !strings.Contains(userCode, "if") {
		suggestions = append(suggestions, "Add conditional statements for special cases")
	}
	if !strings.Contains(userCode, "print") {
		suggestions = append(suggestions, "Add print statements to display the pattern")
	}
	return suggestions
}

// ProgressiveHints 按提交进度逐层给提示：没写代码给完整路线，
// 缺循环提循环，循环不够提嵌套，否则提输出
func ProgressiveHints(pattern *model.Pattern, userCode string) []string {
	switch {
	case userCode == "":
		return []string{
			fmt.Sprintf("Start with a variable n = %d", pattern.Rows),
			"Create a loop from 0 to n-1",
			"Calculate spaces and stars for each row",
			"Print spaces, then stars, then newline",
		}
	case !strings.Contains(userCode, "for"):
		return []string{
			"Add a for loop to iterate through rows",
			"Use range() function for the loop",
		}
	case strings.Count(userCode, "for") < pattern.Loops:
		return []string{
			"You need nested loops for this pattern",
			"Add an inner loop for columns",
		}
	default:
		return []string{
			"Great progress! Now add the print statements",
			"Make sure to print newline after each row",
		}
	}
}

// CorrectnessScore 结构检查加权打分，[0,1]
func CorrectnessScore(userCode string, pattern *model.Pattern) float64 {
	if userCode == "" {
		return 0.0
	}

	score := 0.0
	if strings.Contains(userCode, "for") {
		score += 0.3
	}
	if pattern != nil && pattern.Loops > 1 && strings.Count(userCode, "for") >= 2 {
		score += 0.3
	}
	if hasPrint(userCode) {
		score += 0.2
	}
	if pattern != nil && pattern.Conditions > 0 && strings.Contains(userCode, "if") {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func hasPrint(code string) bool {
	return strings.Contains(code, "print") ||
		strings.Contains(code, "console.log") ||
		strings.Contains(code, "System.out.print")
}

// GenerateCodeTemplate 已知图案给出参考实现，其余给TODO骨架
func GenerateCodeTemplate(pattern *model.Pattern, language string) string {
	switch language {
	case "python":
		switch pattern.ID {
		case 1:
			return "# Square Pattern (Solid)\n" +
				"n = 4\n" +
				"for i in range(n):\n" +
				"    for j in range(n):\n" +
				"        print('*', end='')\n" +
				"    print()"
		case 2:
			return "# Right Triangle Pattern\n" +
				"n = 4\n" +
				"for i in range(1, n + 1):\n" +
				"    print('*' * i)"
		case 31:
			return "# Diamond Pattern\n" +
				"n = 5\n" +
				"# Upper half\n" +
				"for i in range(n//2 + 1):\n" +
				"    spaces = ' ' * (n//2 - i)\n" +
				"    stars = '*' * (2*i + 1)\n" +
				"    print(spaces + stars)\n" +
				"\n" +
				"# Lower half\n" +
				"for i in range(n//2 - 1, -1, -1):\n" +
				"    spaces = ' ' * (n//2 - i)\n" +
				"    stars = '*' * (2*i + 1)\n" +
				"    print(spaces + stars)"
		default:
			return fmt.Sprintf("# %s\n# TODO: Implement this pattern\n# Formula: %s", pattern.Name, pattern.Formula)
		}
	case "javascript":
		if pattern.ID == 2 {
			return "// Right Triangle Pattern\n" +
				"const n = 4;\n" +
				"for (let i = 1; i <= n; i++) {\n" +
				"    console.log('*'.repeat(i));\n" +
				"}"
		}
		return fmt.Sprintf("// %s\n// TODO: Implement this pattern\n// Formula: %s", pattern.Name, pattern.Formula)
	default:
		return fmt.Sprintf("// %s\n// TODO: Implement this pattern\n// Formula: %s", pattern.Name, pattern.Formula)
	}
}

// DetailedExplanation 模板化的分步讲解，随生成代码一起返回
func DetailedExplanation(pattern *model.Pattern, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", pattern.Name, pattern.Description)
	fmt.Fprintf(&b, "**Formula**: %s\n\n", pattern.Formula)
	fmt.Fprintf(&b, "This pattern has %d rows and needs %d loop(s)", pattern.Rows, pattern.Loops)
	if pattern.Conditions > 0 {
		fmt.Fprintf(&b, " with %d condition(s) for the special cases", pattern.Conditions)
	}
	b.WriteString(".\n\n")
	b.WriteString("Steps:\n")
	b.WriteString("1. Loop over each row.\n")
	if pattern.Loops > 1 {
		b.WriteString("2. Inside the row loop, loop over the columns.\n")
		b.WriteString("3. Decide for each position whether to print a character or a space.\n")
	} else {
		b.WriteString("2. Build the row string from the formula and print it.\n")
	}
	fmt.Fprintf(&b, "\nThe reference implementation below is written in %s.\n", language)
	return b.String()
}
