// Package fetch retrieves the rendered fight-schedule page text.
//
// The primary path drives a headless Chromium instance via chromedp with
// the usual automation-hiding flags and a desktop browser User-Agent, so
// JavaScript-rendered content and basic bot checks are handled. When no
// browser is available, a plain HTTP GET with browser-realistic headers is
// used and the HTML is reduced to its visible text.
package fetch
