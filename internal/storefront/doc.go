// Package storefront reads saved Kindle content-library pages.
//
// A page is the HTML the browser saves for one page of the "Content & Devices"
// library table. ParsePage pulls the title and author out of each row and
// reads the pager so callers know whether another page follows. Collector
// accumulates parsed pages in the order they were added.
package storefront
