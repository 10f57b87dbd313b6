package markdown

import (
	"fmt"
	"html"

	"github.com/bethropolis/scribe/internal/logger"
)

// RenderErrorMessage is shown in place of output the renderer could not produce.
const RenderErrorMessage = "Error rendering markdown"

// ErrorHTML is the inline fragment substituted for a failed render.
func ErrorHTML(err error) string {
	return fmt.Sprintf(`<p class="render-error">%s: %s</p>`, RenderErrorMessage, html.EscapeString(err.Error()))
}

// SafeRender renders src and never fails: errors and panics are logged and
// replaced by ErrorHTML. err reports what went wrong, if anything.
func SafeRender(r Renderer, src string) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("renderer panic: %v", rec)
			logger.Errorf("Markdown render panicked: %v", rec)
			out = ErrorHTML(err)
		}
	}()
	if r == nil {
		err = fmt.Errorf("no renderer available")
		return ErrorHTML(err), err
	}
	out, err = r.Render(src)
	if err != nil {
		logger.Warnf("Markdown render failed: %v", err)
		return ErrorHTML(err), err
	}
	return out, nil
}
