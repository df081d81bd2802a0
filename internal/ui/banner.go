package ui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const bannerText = `
__   ____ _  ___ __ _ _ __   ___ _   _ ___| |_ __ _| |_ ___
\ \ / / _' |/ __/ _' | '_ \ / __| | | / __| __/ _' | __/ __|
 \ V / (_| | (_| (_| | | | | (__| |_| \__ \ || (_| | |_\__ \
  \_/ \__,_|\___\__,_|_| |_|\___|\__, |___/\__\__,_|\__|___/
                                 |___/
 HeadHunter & SuperJob salaries by programming language
`

// ColorizeText applies a random color fade to the input text
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	half := len(chars) / 2
	if half == 0 {
		return text
	}

	var b strings.Builder
	for i, ch := range chars {
		b.WriteString(startColor.Fade(0, float32(len(chars)), float32(i%half), endColor).Sprint(ch))
	}
	return b.String()
}

// PrintBanner writes the application banner to w unless silence is set
func PrintBanner(w io.Writer, silence bool) {
	if silence {
		return
	}
	fmt.Fprintln(w, ColorizeText(bannerText))
}

// ColorizeSalary colors a formatted salary by its rouble value
func ColorizeSalary(formatted string, value int64) string {
	switch {
	case value >= 300000:
		return pterm.Green(formatted)
	case value >= 200000:
		return pterm.LightGreen(formatted)
	case value >= 100000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
