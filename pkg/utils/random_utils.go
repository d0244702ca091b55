package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RandomInt32 生成一个安全的随机32位整数
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}

// GenerateQRCodeToken 为房源生成唯一的二维码标识，格式如 LOC-8F3A2C1D
func GenerateQRCodeToken() string {
	id := uuid.New().String()
	// 取UUID前8位，保证二维码内容简短可扫
	return fmt.Sprintf("LOC-%s", strings.ToUpper(id[:8]))
}
