package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repair_workorder/internal/services"
	"github.com/repair_workorder/pkg/utils"
)

// AdminHandler 管理员数据导出、导入、清除
type AdminHandler struct {
	service        services.AdminService
	maxUploadBytes int64
}

func NewAdminHandler(s services.AdminService, maxUploadBytes int64) *AdminHandler {
	return &AdminHandler{service: s, maxUploadBytes: maxUploadBytes}
}

// Dispatch 兼容旧接口 admin-manager.php?action=export|import|clear
func (h *AdminHandler) Dispatch(c *gin.Context) {
	action := c.Query("action")
	if action == "" {
		action = c.PostForm("action")
	}
	switch action {
	case "export":
		h.Export(c)
	case "import":
		h.Import(c)
	case "clear":
		h.Clear(c)
	default:
		utils.RespondBadRequest(c, "无效的操作")
	}
}

// Export godoc
// @Summary 导出全部数据
// @Description 以附件形式下载所有每日记录表，format 为 json (默认) 或 xlsx
// @Tags admin
// @Security BearerAuth
// @Produce  json
// @Param format query string false "导出格式" Enums(json, xlsx)
// @Success 200 {object} services.ExportDocument
// @Failure 400 {object} utils.Envelope "不支持的导出格式"
// @Failure 500 {object} utils.Envelope "导出失败"
// @Router /admin/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedExportFormat) {
			utils.RespondBadRequest(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "导出失败", err)
		return
	}
	utils.SendAttachment(c, file.ContentType, file.ASCIIName, file.UTF8Name, file.Body)
}

// Import godoc
// @Summary 导入数据
// @Description 上传导出格式的 JSON 文件，按 (user, 日期) 逐条新建或覆盖，任一失败整体回滚
// @Tags admin
// @Security BearerAuth
// @Accept  multipart/form-data
// @Produce  json
// @Param import_file formData file true "导出的 JSON 文件"
// @Success 200 {object} utils.Envelope{results=map[string]services.ImportCount}
// @Failure 400 {object} utils.Envelope "导入失败"
// @Failure 409 {object} utils.Envelope "另一个批量操作正在进行"
// @Router /admin/import [post]
func (h *AdminHandler) Import(c *gin.Context) {
	header, err := c.FormFile("import_file")
	if err != nil {
		utils.RespondBadRequest(c, "导入失败: 请选择要导入的JSON文件")
		return
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		utils.RespondError(c, http.StatusRequestEntityTooLarge, "导入失败: 文件过大")
		return
	}

	f, err := header.Open()
	if err != nil {
		utils.RespondBadRequest(c, "导入失败: 无法读取文件内容")
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		utils.RespondBadRequest(c, "导入失败: 无法读取文件内容")
		return
	}

	result, err := h.service.Import(c.Request.Context(), header.Filename, content)
	if err != nil {
		if errors.Is(err, services.ErrBulkOperationInProgress) {
			utils.RespondConflictError(c, err.Error())
			return
		}
		_ = c.Error(err)
		utils.RespondBadRequest(c, "导入失败: "+err.Error())
		return
	}

	var info interface{}
	if len(result.ImportInfo) > 0 {
		info = result.ImportInfo
	}
	utils.RespondResults(c, "数据导入成功", result.Results, info)
}

// Clear godoc
// @Summary 清除所有数据
// @Description 清空所有每日记录表并重置自增 ID
// @Tags admin
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.Envelope{results=map[string]int64}
// @Failure 409 {object} utils.Envelope "另一个批量操作正在进行"
// @Failure 500 {object} utils.Envelope "清除数据失败"
// @Router /admin/clear [post]
func (h *AdminHandler) Clear(c *gin.Context) {
	deleted, err := h.service.Clear(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrBulkOperationInProgress) {
			utils.RespondConflictError(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "清除数据失败", err)
		return
	}
	utils.RespondResults(c, "所有数据已成功清除", deleted, nil)
}
