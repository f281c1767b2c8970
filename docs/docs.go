// Package docs 注册 Swagger 文档。
// 文档内容与 internal/handlers 中的 godoc 注解对应，修改接口时需同步更新。
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "description": "校验用户名和密码，返回 JWT 以及按权限等级推导的角色",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "用户登录",
                "parameters": [
                    {
                        "description": "登录凭证",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "登录成功",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "用户名或密码错误、账户被禁用",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "500": {
                        "description": "服务器内部错误",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "使当前 Token 在过期前失效",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "登出",
                "responses": {
                    "200": {
                        "description": "成功登出",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "401": {
                        "description": "未认证",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "当前会话",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "401": {
                        "description": "未认证",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/fcbmwo": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "按 user 和日期过滤，按日期、创建时间倒序。日期参数可用记录自身的日期列名或 date",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "故障工单列表",
                "parameters": [
                    {
                        "type": "string",
                        "description": "工位或用户名",
                        "name": "user",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "日期 YYYY-MM-DD，缺省为当天，空串为全部",
                        "name": "date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "故障工单、数据恢复记录的日期",
                        "name": "work_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "7S 评估日期",
                        "name": "evaluation_date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "请求参数无效",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "同一 user 同一天只保留一条，已存在时覆盖内容列",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "保存故障工单",
                "parameters": [
                    {
                        "description": "记录内容，字段随资源不同",
                        "name": "record",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "updated",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "201": {
                        "description": "created",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/fcbmwo/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "获取故障工单",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "记录ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "7S 评估要求 current_user 与记录的 user 一致",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "更新故障工单",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "记录ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "记录内容，可附带 current_user",
                        "name": "record",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "删除故障工单",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "记录ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/7s-management": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "按 user 和日期过滤，按日期、创建时间倒序。日期参数可用记录自身的日期列名或 date",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "7S 评估列表",
                "parameters": [
                    {
                        "type": "string",
                        "description": "工位或用户名",
                        "name": "user",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "日期 YYYY-MM-DD，缺省为当天，空串为全部",
                        "name": "date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "故障工单、数据恢复记录的日期",
                        "name": "work_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "7S 评估日期",
                        "name": "evaluation_date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "请求参数无效",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "同一 user 同一天只保留一条，已存在时覆盖内容列",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "保存7S 评估",
                "parameters": [
                    {
                        "description": "记录内容，字段随资源不同",
                        "name": "record",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "updated",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "201": {
                        "description": "created",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/7s-management/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "获取7S 评估",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "记录ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "7S 评估要求 current_user 与记录的 user 一致",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "更新7S 评估",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "记录ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "记录内容，可附带 current_user",
                        "name": "record",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "删除7S 评估",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "记录ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/drarwo": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "按 user 和日期过滤，按日期、创建时间倒序。日期参数可用记录自身的日期列名或 date",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "数据恢复记录列表",
                "parameters": [
                    {
                        "type": "string",
                        "description": "工位或用户名",
                        "name": "user",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "日期 YYYY-MM-DD，缺省为当天，空串为全部",
                        "name": "date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "故障工单、数据恢复记录的日期",
                        "name": "work_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "7S 评估日期",
                        "name": "evaluation_date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "请求参数无效",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "同一 user 同一天只保留一条，已存在时覆盖内容列",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "保存数据恢复记录",
                "parameters": [
                    {
                        "description": "记录内容，字段随资源不同",
                        "name": "record",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "updated",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "201": {
                        "description": "created",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/drarwo/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "获取数据恢复记录",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "记录ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "7S 评估要求 current_user 与记录的 user 一致",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "更新数据恢复记录",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "记录ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "记录内容，可附带 current_user",
                        "name": "record",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "daily"
                ],
                "summary": "删除数据恢复记录",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "记录ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/workorders": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "按创建时间倒序返回工单头，附带明细数量 detail_count",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workorders"
                ],
                "summary": "获取工单列表",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "创建工单头及明细，并写入一条 create 日志",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workorders"
                ],
                "summary": "创建工单",
                "parameters": [
                    {
                        "description": "工单信息",
                        "name": "workorder",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CreateWorkOrderPayload"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "工号和创建人不能为空",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/workorders/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "返回工单头及按工程师、故障类型排序的明细",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workorders"
                ],
                "summary": "获取工单详情",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "工单ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "工单不存在",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "更新工号或状态；提供 details 时整体替换明细。写入一条 update 日志",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workorders"
                ],
                "summary": "更新工单",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "工单ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "更新内容",
                        "name": "workorder",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.UpdateWorkOrderPayload"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "工单不存在",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "删除工单及其明细，日志保留。需要裁判或管理员",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workorders"
                ],
                "summary": "删除工单",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "工单ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "工单不存在",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/workorders/{id}/logs": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workorders"
                ],
                "summary": "工单操作日志",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "工单ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/users": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "获取用户列表",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "权限等级 1 工程师 (engineer_slot 1..3)、2 数据恢复工程师、3 裁判、4 管理员",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "创建用户",
                "parameters": [
                    {
                        "description": "用户信息",
                        "name": "user",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CreateUserPayload"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "409": {
                        "description": "用户名已存在",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "获取用户",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "用户ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "更新用户",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "用户ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "更新内容",
                        "name": "user",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.UpdateUserPayload"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "删除用户",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "用户ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/admin/export": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "以附件形式下载所有每日记录表，format 为 json (默认) 或 xlsx",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "admin"
                ],
                "summary": "导出全部数据",
                "parameters": [
                    {
                        "enum": [
                            "json",
                            "xlsx"
                        ],
                        "type": "string",
                        "description": "导出格式",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/services.ExportDocument"
                        }
                    },
                    "400": {
                        "description": "不支持的导出格式",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "500": {
                        "description": "导出失败",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/admin/import": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "上传导出格式的 JSON 文件，按 (user, 日期) 逐条新建或覆盖，任一失败整体回滚",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "admin"
                ],
                "summary": "导入数据",
                "parameters": [
                    {
                        "type": "file",
                        "description": "导出的 JSON 文件",
                        "name": "import_file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "导入失败",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "409": {
                        "description": "另一个批量操作正在进行",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/admin/clear": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "清空所有每日记录表并重置自增 ID",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "admin"
                ],
                "summary": "清除所有数据",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "409": {
                        "description": "另一个批量操作正在进行",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "500": {
                        "description": "清除数据失败",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/config": {
            "get": {
                "description": "key=database.initialized 时返回布尔值，否则返回全部配置",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "读取运行状态配置",
                "parameters": [
                    {
                        "type": "string",
                        "description": "配置键",
                        "name": "key",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "不支持的配置项",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "目前只支持 database.initialized，value 接受布尔值或 \"true\"/\"1\"",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "更新运行状态配置",
                "parameters": [
                    {
                        "description": "配置项",
                        "name": "config",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.ConfigUpdateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/database/init": {
            "post": {
                "description": "执行迁移、在用户表为空时创建管理员并标记已初始化。已初始化后只有管理员可以再次调用",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "初始化数据库",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "403": {
                        "description": "数据库已初始化",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        },
        "/headers": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "读取自定义表头",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "请求体为任意非空 JSON 对象，原样格式化后保存",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "保存自定义表头",
                "parameters": [
                    {
                        "description": "表头配置",
                        "name": "headers",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "请求体为任意非空 JSON 对象，原样格式化后保存",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "保存自定义表头",
                "parameters": [
                    {
                        "description": "表头配置",
                        "name": "headers",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/utils.Envelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.ConfigUpdateRequest": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "value": {}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                }
            }
        },
        "models.CreateUserPayload": {
            "type": "object",
            "required": [
                "password",
                "permissions",
                "username"
            ],
            "properties": {
                "engineer_slot": {
                    "type": "integer"
                },
                "password": {
                    "type": "string"
                },
                "permissions": {
                    "type": "integer"
                },
                "real_name": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "username": {
                    "type": "string"
                }
            }
        },
        "models.CreateWorkOrderPayload": {
            "type": "object",
            "required": [
                "created_by",
                "work_number"
            ],
            "properties": {
                "created_by": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "work_number": {
                    "type": "string"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.WorkOrderDetailPayload"
                    }
                }
            }
        },
        "models.UpdateUserPayload": {
            "type": "object",
            "properties": {
                "engineer_slot": {
                    "type": "integer"
                },
                "password": {
                    "type": "string"
                },
                "permissions": {
                    "type": "integer"
                },
                "real_name": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "username": {
                    "type": "string"
                }
            }
        },
        "models.UpdateWorkOrderPayload": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "work_number": {
                    "type": "string"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.WorkOrderDetailPayload"
                    }
                }
            }
        },
        "models.WorkOrderDetailPayload": {
            "type": "object",
            "properties": {
                "engineer": {
                    "type": "string"
                },
                "fault_type": {
                    "type": "string"
                },
                "fault_description": {
                    "type": "string"
                },
                "test_result": {
                    "type": "string"
                },
                "locate_component": {
                    "type": "string"
                },
                "repair_result": {
                    "type": "string"
                },
                "tuning_effect": {
                    "type": "string"
                },
                "seven_s_evaluation": {
                    "type": "object"
                }
            }
        },
        "services.ExportDocument": {
            "type": "object",
            "properties": {
                "fcbmwo_date": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "7S_Management_Evaluation": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "drarwo": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "export_info": {
                    "type": "object"
                }
            }
        },
        "utils.Envelope": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                },
                "data": {},
                "action": {
                    "type": "string"
                },
                "query_info": {},
                "details": {},
                "results": {},
                "import_info": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "维修工单系统 API",
	Description:      "维修团队每日故障工单、7S 评估、数据恢复记录与工单管理接口",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
