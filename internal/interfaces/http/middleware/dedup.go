package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"hostel-desk.backend/pkg/redis"
)

// DedupWindow is how long an identical submission is rejected after the first
const DedupWindow = 10 * time.Second

const dedupMultipartMemory = 32 << 20

var redisSetNX = redis.SetNX

// SubmitDedup rejects an identical form submission fired twice in quick
// succession, typically a double-clicked submit button. The guard keys on
// the principal and a digest of the parsed form values, so distinct
// complaints from the same student pass through. Earlier middleware (CSRF)
// may already have parsed the form and drained the body stream, which is
// why the digest never touches the raw body. Must run after SessionAuth.
func SubmitDedup() gin.HandlerFunc {
	return func(c *gin.Context) {
		if redis.GetClient() == nil {
			c.Next()
			return
		}
		principal, ok := GetPrincipal(c)
		if !ok {
			c.Next()
			return
		}

		// Idempotent when CSRF already parsed; ErrNotMultipart still
		// leaves PostForm populated for urlencoded bodies.
		if err := c.Request.ParseMultipartForm(dedupMultipartMemory); err != nil &&
			!errors.Is(err, http.ErrNotMultipart) {
			c.Next()
			return
		}

		key := fmt.Sprintf("submit:%d:%s", principal.ID, formDigest(c.Request))

		acquired, err := redisSetNX(c.Request.Context(), key, "1", DedupWindow)
		if err != nil {
			// Redis trouble must not block submissions.
			c.Next()
			return
		}
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Duplicate submission, please wait a moment",
			})
			return
		}
		c.Next()
	}
}

func formDigest(r *http.Request) string {
	h := sha256.New()

	fields := make([]string, 0, len(r.PostForm))
	for f := range r.PostForm {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		for _, v := range r.PostForm[f] {
			io.WriteString(h, f)
			h.Write([]byte{0})
			io.WriteString(h, v)
			h.Write([]byte{0})
		}
	}

	if r.MultipartForm != nil {
		files := make([]string, 0, len(r.MultipartForm.File))
		for f := range r.MultipartForm.File {
			files = append(files, f)
		}
		sort.Strings(files)
		for _, f := range files {
			for _, fh := range r.MultipartForm.File[f] {
				fmt.Fprintf(h, "%s\x00%s\x00%d\x00", f, fh.Filename, fh.Size)
			}
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
