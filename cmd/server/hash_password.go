package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/repair_workorder/pkg/utils"
)

// hashPasswordCmd 生成 bcrypt 哈希，用于手工写入 user 表
func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "生成密码的 bcrypt 哈希",
		Long:  `生成密码的 bcrypt 哈希。未提供参数时从标准输入读取一行。`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("读取密码失败: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("密码不能为空")
			}

			hashed, err := utils.HashPassword(password)
			if err != nil {
				return fmt.Errorf("生成哈希失败: %w", err)
			}
			fmt.Printf("%s %s\n", color.New(color.FgGreen).Sprint("Hashed Password:"), hashed)
			return nil
		},
	}
}
