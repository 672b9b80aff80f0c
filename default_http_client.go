/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httputil"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// NewLoggingHTTPClient creates new client with debug http
func NewLoggingHTTPClient(debug bool, transportTimeoutSec int) *http.Client {
	var transport http.RoundTripper
	base := &http.Transport{
		MaxConnsPerHost:       65535,
		MaxIdleConns:          65535,
		MaxIdleConnsPerHost:   65535,
		DisableCompression:    true,
		ResponseHeaderTimeout: time.Duration(transportTimeoutSec) * time.Second,
	}
	if debug {
		transport = &DumpTransport{base}
	} else {
		transport = base
	}
	cookieJar, _ := cookiejar.New(nil)
	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(transportTimeoutSec) * time.Second,
		Jar:       cookieJar,
	}
}

const (
	RequestHeader      = "========== REQUEST ==========\n%s\n"
	RequestHeaderBody  = "========== REQUEST ==========\n%s\n%s\n"
	ResponseHeaderBody = "========== RESPONSE ==========\n%s\n%s\n"
	ResponseHeader     = "========== RESPONSE ==========\n%s\n"
	HTTPBodyDelimiter  = "\r\n\r\n"
)

// DumpTransport log http request/responses, pprint bodies
type DumpTransport struct {
	r http.RoundTripper
}

func (d *DumpTransport) RoundTrip(h *http.Request) (*http.Response, error) {
	dump, _ := httputil.DumpRequestOut(h, true)
	if bodyIsJson(h.Header) {
		req, pprintBody := prettyPrintJsonBody(dump)
		fmt.Printf(RequestHeaderBody, req, pprintBody)
	} else {
		fmt.Printf(RequestHeader, dump)
	}
	resp, err := d.r.RoundTrip(h)
	if err != nil {
		return nil, err
	}
	if resp.Body != nil && bodyIsJson(resp.Header) {
		dump, _ = httputil.DumpResponse(resp, true)
		respString, pprintBody := prettyPrintJsonBody(dump)
		fmt.Printf(ResponseHeaderBody, respString, pprintBody)
		return resp, err
	}
	dump, _ = httputil.DumpResponse(resp, true)
	fmt.Printf(ResponseHeader, dump)
	return resp, err
}

// prettyPrintJsonBody returns http format request and pretty printed json body,
// the raw body is returned when it is not valid json
func prettyPrintJsonBody(b []byte) (string, string) {
	s := string(b)
	sp := strings.Split(s, HTTPBodyDelimiter)
	if len(sp) != 2 {
		return s, ""
	}
	body := sp[1]
	var raw jsoniter.RawMessage
	if err := jsoniter.Unmarshal([]byte(body), &raw); err != nil {
		return sp[0], body
	}
	pprintBody, err := jsoniter.MarshalIndent(raw, "", "    ")
	if err != nil {
		return sp[0], body
	}
	return sp[0], string(pprintBody)
}

func bodyIsJson(h http.Header) bool {
	return strings.Contains(h.Get("content-type"), "application/json")
}
