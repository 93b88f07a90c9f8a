package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePostingHTML = `<!DOCTYPE html>
<html>
<head><title>백엔드 개발자 채용 - A사</title></head>
<body>
<nav>홈 | 채용 | 회사소개</nav>
<script>console.log("tracking");</script>
<div class="job-description">
<h2>담당 업무</h2>
<p>전력 설비 모니터링 서비스 개발</p>

<h2>자격 요건</h2>
<p>경력 3년 이상</p>
</div>
<footer>Copyright A사</footer>
</body>
</html>`

func TestExtractMainText_UsesContentSelector(t *testing.T) {
	text, title, err := ExtractMainText(samplePostingHTML)
	require.NoError(t, err)

	assert.Equal(t, "백엔드 개발자 채용 - A사", title)
	assert.Contains(t, text, "전력 설비 모니터링 서비스 개발")
	assert.Contains(t, text, "경력 3년 이상")
}

func TestExtractMainText_RemovesNoiseElements(t *testing.T) {
	text, _, err := ExtractMainText(samplePostingHTML)
	require.NoError(t, err)

	assert.NotContains(t, text, "홈 | 채용")
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	html := `<html><head><title>공고</title></head><body><p>본문 텍스트</p></body></html>`

	text, title, err := ExtractMainText(html)
	require.NoError(t, err)

	assert.Equal(t, "공고", title)
	assert.Equal(t, "본문 텍스트", text)
}

func TestCleanWhitespace(t *testing.T) {
	input := "  첫 줄  \n\n\n\n  둘째 줄\t\n\n셋째 줄  "

	got := cleanWhitespace(input)

	assert.Equal(t, "첫 줄\n\n둘째 줄\n\n셋째 줄", got)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("   \n  "))
	assert.True(t, ShouldUseBrowser("짧은 본문"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength)))
}

func TestURL_FetchesAndExtracts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(samplePostingHTML))
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "백엔드 개발자 채용 - A사", result.Title)
	assert.Contains(t, result.Text, "전력 설비 모니터링 서비스 개발")
}

func TestURL_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)

	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Message, "404")
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, bad := range []string{"", "not-a-url", "relative/path"} {
		_, err := URL(context.Background(), bad, nil)

		var fetchErr *Error
		require.True(t, errors.As(err, &fetchErr), "input %q", bad)
		assert.Equal(t, "invalid URL", fetchErr.Message)
	}
}

func TestURL_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := URL(context.Background(), url, nil)

	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "HTTP request failed", fetchErr.Message)
}
