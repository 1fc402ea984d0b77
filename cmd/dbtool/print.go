package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var apiBase string

func init() {
	for _, cmd := range []*cobra.Command{printUsersCmd, printMenuCmd} {
		cmd.Flags().StringVar(&apiBase, "api", "http://localhost:4000", "API Server 地址")
	}
}

var printUsersCmd = &cobra.Command{
	Use:   "print-users",
	Short: "通过 API 打印全部用户",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printViaAPI("/admin/users")
	},
}

var printMenuCmd = &cobra.Command{
	Use:   "print-menu",
	Short: "通过 API 打印管理菜单",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printViaAPI("/admin/menu")
	},
}

// printViaAPI 用 ADMIN_PASSWORD 换取 token 后请求管理接口，缩进打印结果
func printViaAPI(path string) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD not set")
	}

	client := &http.Client{Timeout: 10 * time.Second}

	body, _ := json.Marshal(map[string]string{"password": password})
	resp, err := client.Post(apiBase+"/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("admin login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("admin login: status %d", resp.StatusCode)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return fmt.Errorf("admin login: decode response: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp2, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp2.StatusCode)
	}

	var data any
	if err := json.NewDecoder(resp2.Body).Decode(&data); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
