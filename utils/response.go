package utils

import "github.com/gin-gonic/gin"

type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{Code: "ok", Message: "success", Data: data})
}

func Error(c *gin.Context, httpCode int, code string, message string) {
	c.JSON(httpCode, Response{Code: code, Message: message})
}

func ErrorWithData(c *gin.Context, httpCode int, code string, message string, data interface{}) {
	c.JSON(httpCode, Response{Code: code, Message: message, Data: data})
}
