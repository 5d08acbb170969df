package model

import (
	"github.com/google/uuid"
)

// newID 生成主键（UUID v4），由各模型的 BeforeCreate 钩子调用
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
