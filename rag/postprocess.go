package rag

import "regexp"

// Model output writes time-of-day ranges as "1415시"; readers expect
// "14~15시". Idempotent: a normalized range no longer matches.
var hourRangePattern = regexp.MustCompile(`(\d{2})(\d{2})시`)

func Postprocess(text string) string {
	return hourRangePattern.ReplaceAllString(text, "$1~${2}시")
}
