// Package http はマーケットデータプロバイダ向けの共通HTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// 接続レベルのタイムアウトとプール設定。リクエスト全体の上限は呼び出し元が決める。
const (
	dialTimeout         = 5 * time.Second
	keepAlive           = 30 * time.Second
	tlsHandshakeTimeout = 5 * time.Second
	idleConnTimeout     = 90 * time.Second
	maxIdleConns        = 20
	maxIdleConnsPerHost = 4
)

// NewHTTPClient はプロバイダ呼び出し用のクライアントを作成します。
//
//   - timeout: リクエスト全体の上限（http.DefaultClient は無制限なので使わない）
//   - Jar: プロバイダが返す同意Cookieを後続リクエストで送り返す
//   - Proxy: HTTP_PROXY などの環境変数に従う
//
// 接続先はほぼ1ホストなので、アイドル接続はホスト単位で少数に抑える。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: keepAlive,
		}).DialContext,
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
	}
	// cookiejar.New は nil オプションでエラーを返さない
	jar, _ := cookiejar.New(nil)
	return &http.Client{Timeout: timeout, Transport: t, Jar: jar}
}
