/*
Package frame implements the streaming session's record reassembly.

The wire protocol separates JSON records with a carriage return (`\r`);
newlines may appear inside a record. Extractor.Consume takes one
transport chunk at a time and returns the records it was able to
complete, carrying any unterminated suffix forward to the next call.
*/
package frame
