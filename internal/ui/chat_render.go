package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/chatpane/internal/chat"
)

const codeFence = "```"

// highlightCode applies syntax highlighting to code using chroma.
// An empty language is guessed from the code itself.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil && language == "" {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().Chroma)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// wrapText wraps text to width, breaking long words, keeping ANSI sequences intact
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// renderText renders message text: prose is wrapped to width and fenced
// code blocks are syntax highlighted. An unterminated fence runs to the end.
func renderText(text string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var out []string
	var code []string
	inCode := false
	lang := ""

	flushCode := func() {
		highlighted := highlightCode(strings.Join(code, "\n"), lang)
		codeWidth := max(width-ChatCodeBlockStyle.GetHorizontalPadding(), 1)
		for _, line := range strings.Split(highlighted, "\n") {
			out = append(out, ChatCodeBlockStyle.Render(ansi.Truncate(line, codeWidth, "…")))
		}
		code = code[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), codeFence) {
			if inCode {
				flushCode()
				inCode = false
			} else {
				inCode = true
				lang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), codeFence))
			}
			continue
		}
		if inCode {
			code = append(code, line)
			continue
		}
		out = append(out, ChatMessageStyle.Render(wrapText(line, width)))
	}
	if inCode {
		flushCode()
	}

	return strings.Join(out, "\n")
}

// renderMessageHeader renders "Sender:" on the left and the timestamp on the right
func renderMessageHeader(msg chat.Message, fromCreator bool, width int) string {
	nameStyle := ChatOperatorStyle
	if fromCreator {
		nameStyle = ChatVisitorStyle
	}
	sender := msg.Sender.Name
	if strings.TrimSpace(sender) == "" {
		sender = chat.AnonymousName
	}
	left := nameStyle.Render(sender + ":")

	ts := chat.FormatTimestamp(msg.CreatedAt)
	if ts == "" {
		return left
	}
	right := ChatTimestampStyle.Render(ts)

	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return left + "\n" + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderMessage renders one message. The creator's messages get the highlight background.
func renderMessage(msg chat.Message, conv chat.Conversation, width int) string {
	fromCreator := msg.FromCreator(conv)
	block := renderMessageHeader(msg, fromCreator, width) + "\n" + renderText(strings.TrimRight(msg.Text, "\n"), width)
	if fromCreator {
		return ChatVisitorBlockStyle.Width(width).Render(block)
	}
	return block
}

// renderThread renders the messages in the given order
func renderThread(conv chat.Conversation, messages []chat.Message, width int) string {
	parts := make([]string, len(messages))
	for i, msg := range messages {
		parts[i] = renderMessage(msg, conv, width)
	}
	return strings.Join(parts, "\n\n")
}
