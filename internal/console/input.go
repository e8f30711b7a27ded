package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// readPassword подменяется в тестах, чтобы не обращаться к терминалу.
var readPassword = term.ReadPassword

// PasswordFunc читает пароль пользователя.
type PasswordFunc func() (string, error)

// GetSimpleText печатает приглашение в w и читает одну строку из reader без завершающего перевода строки.
// Если EOF наступил после части строки, возвращается эта часть.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// TerminalPassword возвращает PasswordFunc, читающую пароль из терминала fd без эха.
func TerminalPassword(fd int, w io.Writer) PasswordFunc {
	return func() (string, error) {
		pw, err := readPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(pw)), nil
	}
}

// IsTerminal сообщает, подключён ли fd к терминалу.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}
