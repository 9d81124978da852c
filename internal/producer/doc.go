// Package producer contains the background item producers: the email
// simulator, the fsnotify inbox watcher, and the generic mail poller.
// Producers only ever add new documents to Needs_Action and never touch
// a file once written; deduplication is a target-filename existence
// check before writing.
package producer
