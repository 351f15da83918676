package pdftext

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv"
)

func (e *Extractor) docconv(content []byte) (Result, error) {
	res := Result{Method: MethodDocconv}
	resp, err := docconv.Convert(bytes.NewReader(content), "application/pdf", false)
	if err != nil {
		return res, fmt.Errorf("docconv: %w", err)
	}
	res.Text = resp.Body
	if n, ok := resp.Meta["Pages"]; ok {
		_, _ = fmt.Sscanf(n, "%d", &res.Pages)
	}
	return res, nil
}
