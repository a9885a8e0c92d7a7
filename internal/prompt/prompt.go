package prompt

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/promptq/promptq/internal/llm"
)

// ReadTextFile reads a file as UTF-8 text. Missing, unreadable, empty,
// and non-UTF-8 files are all errors naming the path, so a bad file is
// caught before any network activity.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("error reading file %s: not valid UTF-8", path)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("error reading file %s: file is empty", path)
	}
	return string(data), nil
}

// Load assembles the message list for one request. The prompt file is
// always read and validated. When an input file is given, the single user
// message is "<prompt>\n<input>" with no trimming; without one, the list
// stays empty and the request is sent with "messages": [].
func Load(promptPath, inputPath string) ([]llm.Message, error) {
	promptContent, err := ReadTextFile(promptPath)
	if err != nil {
		return nil, err
	}

	messages := []llm.Message{}

	if inputPath != "" {
		inputContent, err := ReadTextFile(inputPath)
		if err != nil {
			return nil, err
		}
		messages = append(messages, llm.Message{
			Role:    "user",
			Content: promptContent + "\n" + inputContent,
		})
	}

	return messages, nil
}
