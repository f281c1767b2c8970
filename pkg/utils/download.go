package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContentDisposition 生成附件下载头，同时给出 ASCII 文件名和 UTF-8 编码文件名
func ContentDisposition(asciiName, utf8Name string) string {
	asciiName = strings.NewReplacer(`"`, "", "\\", "", "\r", "", "\n", "").Replace(asciiName)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, asciiName, url.PathEscape(utf8Name))
}

// SendAttachment 以附件形式输出内容
func SendAttachment(c *gin.Context, contentType, asciiName, utf8Name string, body []byte) {
	c.Header("Content-Disposition", ContentDisposition(asciiName, utf8Name))
	c.Header("Cache-Control", "no-cache, must-revalidate")
	c.Data(http.StatusOK, contentType, body)
}
