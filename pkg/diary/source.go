package diary

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
)

// Encoding names a supported diary text encoding.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingGBK     Encoding = "gbk"
	EncodingGB18030 Encoding = "gb18030"
)

// ParseEncoding normalises an encoding name from config or flags.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "gbk", "cp936":
		return EncodingGBK, nil
	case "gb18030":
		return EncodingGB18030, nil
	default:
		return "", derrors.ErrValidation.WithMessage(fmt.Sprintf("unsupported encoding %q (want utf-8, gbk or gb18030)", name))
	}
}

// DecodeText converts raw diary bytes to a string. A UTF-8 or UTF-16 byte
// order mark overrides the requested encoding.
func DecodeText(data []byte, enc Encoding) (string, error) {
	var fallback transform.Transformer
	switch enc {
	case EncodingUTF8, "":
		fallback = xunicode.UTF8.NewDecoder()
	case EncodingGBK:
		fallback = simplifiedchinese.GBK.NewDecoder()
	case EncodingGB18030:
		fallback = simplifiedchinese.GB18030.NewDecoder()
	default:
		return "", derrors.ErrValidation.WithMessage(fmt.Sprintf("unsupported encoding %q", enc))
	}

	out, _, err := transform.Bytes(xunicode.BOMOverride(fallback), data)
	if err != nil {
		return "", derrors.ErrEncoding.WithMessage(fmt.Sprintf("decode %s input", enc)).WithCause(err)
	}
	return string(out), nil
}
