// Package writers consumes globber results: it prints them as a listing,
// or copies, archives, base64 encodes or decodes the matched files.
//
// Every writer reports how many entries it handled. Access failures the run
// stepped over are not the writers' concern; WriteIgnored prints them as a
// trailer once the run is done.
package writers
